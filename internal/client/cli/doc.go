// Package cli provides the interactive SerenitySpace command-line client.
//
// It wires configuration, the local metadata store, the REST API client, the
// vault reconciler, and an interactive REPL. Typical flow: restore a persisted
// session (or prompt for credentials), then execute user commands.
//
// Key features:
//   - Register / Login / Logout with a persisted session
//   - Message vault view with live delivery updates
//   - Vent room: public feed and the user's own vents
//   - Private reflections journal
//   - Support-bot chat
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
