// Package metadata is a small key-value store on local sqlite. It plays the
// role the browser's localStorage plays for the web client: persisting the
// access token and the last signed-in user between runs. Nothing else is
// cached locally — vault state is in-memory and re-fetched.
package metadata

import "context"

// Well-known keys.
const (
	KeyAccessToken = "accessToken"
	KeyUser        = "user"
)

// Repository stores opaque values by key. Get returns common.ErrorNotFound
// for a missing key. Keys are only ever dropped together: logout and session
// expiry wipe the whole store via Clear.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}
