// Package vault owns the client-side state of scheduled vault messages: the
// partition into upcoming and delivered sets, the transient "just delivered"
// highlights, and the merging of three independent input sources — the initial
// bulk fetch, real-time push events, and a timer-driven sweep.
package vault

import (
	"context"
	"sync"
	"time"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/common"
	"github.com/rishank14/serenityspace-cli/internal/logging"
)

// DefaultSweepInterval is how often locally held upcoming entries are checked
// against the clock. The sweep is the fallback for missed push events, not the
// primary delivery path.
const DefaultSweepInterval = 60 * time.Second

// DefaultHighlightWindow is how long a newly delivered entry stays flagged.
const DefaultHighlightWindow = 3 * time.Second

// Notifier receives the one-shot user notification for each entry that
// transitions into delivered.
type Notifier interface {
	EntryDelivered(entry models.VaultEntry)
}

// Lister is the slice of the API client the reconciler needs for its bulk
// fetch. *api.RESTClient satisfies it.
type Lister interface {
	UpcomingVaults(ctx context.Context, userID string) ([]models.VaultEntry, error)
	DeliveredVaults(ctx context.Context, userID string) ([]models.VaultEntry, error)
}

// Reconciler maintains the authoritative client-side partition of vault
// entries. Invariants:
//
//   - every known entry is in exactly one of upcoming/delivered (by id);
//   - delivered is ordered most-recent-first;
//   - the delivered-transition is idempotent: applying it twice for one id
//     leaves exactly one copy in delivered and fires one notification.
//
// All mutation goes through Reconciler methods; Snapshot returns copies.
type Reconciler struct {
	client   Lister
	notifier Notifier
	log      logging.Logger

	highlightWindow time.Duration
	now             func() time.Time

	mu            sync.Mutex
	upcoming      []models.VaultEntry
	delivered     []models.VaultEntry
	highlights    map[string]uint64
	highlightGen  uint64
	highlightFunc func(d time.Duration, f func()) // seam for decay timers in tests
}

// Option customizes a Reconciler.
type Option func(*Reconciler)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

// WithHighlightWindow replaces the highlight decay window.
func WithHighlightWindow(d time.Duration) Option {
	return func(r *Reconciler) { r.highlightWindow = d }
}

func NewReconciler(client Lister, notifier Notifier, log logging.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		client:          client,
		notifier:        notifier,
		log:             log.With("component", "vault"),
		highlightWindow: DefaultHighlightWindow,
		now:             time.Now,
		highlights:      make(map[string]uint64),
		highlightFunc:   func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadInitial fetches both sets in parallel and merges them into local state.
// It requires a resolved user identity and leaves state unchanged on any
// fetch error.
//
// Merge rule: the fetch result is the base partition, but an id the reconciler
// already holds in delivered never regresses to upcoming — a push event that
// arrived while the fetch was in flight wins over the fetch's stale
// classification.
func (r *Reconciler) LoadInitial(ctx context.Context, userID string) error {
	if userID == "" {
		return common.ErrNotSignedIn
	}

	var (
		wg            sync.WaitGroup
		up, del       []models.VaultEntry
		upErr, delErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		up, upErr = r.client.UpcomingVaults(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		del, delErr = r.client.DeliveredVaults(ctx, userID)
	}()
	wg.Wait()

	if upErr != nil {
		return upErr
	}
	if delErr != nil {
		return delErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	localDelivered := make(map[string]models.VaultEntry, len(r.delivered))
	for _, e := range r.delivered {
		localDelivered[e.ID] = e
	}
	fetchedDelivered := make(map[string]struct{}, len(del))
	for _, e := range del {
		fetchedDelivered[e.ID] = struct{}{}
	}

	newDelivered := del
	newUpcoming := make([]models.VaultEntry, 0, len(up))
	for _, e := range up {
		if _, dup := fetchedDelivered[e.ID]; dup {
			continue
		}
		if local, ok := localDelivered[e.ID]; ok {
			// Delivered locally (push or sweep) before the fetch resolved;
			// keep our copy at the front instead of regressing to upcoming.
			newDelivered = append([]models.VaultEntry{local}, newDelivered...)
			continue
		}
		newUpcoming = append(newUpcoming, e)
	}

	r.upcoming = newUpcoming
	r.delivered = newDelivered
	r.log.Debug(ctx, "vault state loaded", "upcoming", len(newUpcoming), "delivered", len(newDelivered))
	return nil
}

// OnPushDelivered applies a server-side delivery event. Safe to call for an
// id already absent from upcoming (a prior sweep or refetch may have moved
// it); a duplicate event for an already-delivered id is a no-op.
func (r *Reconciler) OnPushDelivered(entry models.VaultEntry) {
	r.mu.Lock()
	applied := r.applyDeliveredLocked(entry)
	r.mu.Unlock()

	if applied {
		r.notifier.EntryDelivered(entry)
	}
}

// Sweep moves every upcoming entry whose scheduled time has passed into
// delivered, with the same side effects as a push event. It exists because
// push events can be missed (dropped connection); it must be idempotent with
// respect to them.
func (r *Reconciler) Sweep(now time.Time) {
	r.mu.Lock()
	var ready []models.VaultEntry
	for _, e := range r.upcoming {
		if e.Due(now) {
			ready = append(ready, e)
		}
	}
	var applied []models.VaultEntry
	for _, e := range ready {
		if r.applyDeliveredLocked(e) {
			applied = append(applied, e)
		}
	}
	r.mu.Unlock()

	for _, e := range applied {
		r.notifier.EntryDelivered(e)
	}
}

// OnFormSubmitSuccess reconciles a just-created or just-updated entry. An
// entry whose time is already past goes straight to delivered and is never
// transiently visible in upcoming.
func (r *Reconciler) OnFormSubmitSuccess(entry models.VaultEntry) {
	now := r.now()

	r.mu.Lock()
	if entry.Due(now) {
		// Replace any stale copy so the transition carries the new payload.
		r.removeDeliveredLocked(entry.ID)
		applied := r.applyDeliveredLocked(entry)
		r.mu.Unlock()
		if applied {
			r.notifier.EntryDelivered(entry)
		}
		return
	}

	r.removeDeliveredLocked(entry.ID)
	replaced := false
	for i := range r.upcoming {
		if r.upcoming[i].ID == entry.ID {
			r.upcoming[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		r.upcoming = append([]models.VaultEntry{entry}, r.upcoming...)
	}
	r.mu.Unlock()
}

// Delete removes the id from both sets and the highlight set unconditionally.
// Callers delete on the server first; local state stays untouched when the
// remote delete fails.
func (r *Reconciler) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeUpcomingLocked(id)
	r.removeDeliveredLocked(id)
	delete(r.highlights, id)
}

// Snapshot returns copies of both sets and the currently highlighted ids.
func (r *Reconciler) Snapshot() (upcoming, delivered []models.VaultEntry, highlighted map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	upcoming = append([]models.VaultEntry(nil), r.upcoming...)
	delivered = append([]models.VaultEntry(nil), r.delivered...)
	highlighted = make(map[string]bool, len(r.highlights))
	for id := range r.highlights {
		highlighted[id] = true
	}
	return upcoming, delivered, highlighted
}

// Highlighted reports whether id is currently flagged as just delivered.
func (r *Reconciler) Highlighted(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.highlights[id]
	return ok
}

// Run drives the periodic sweep until ctx is canceled.
func (r *Reconciler) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep(r.now())
		case <-ctx.Done():
			return
		}
	}
}

// applyDeliveredLocked is the single idempotent delivered-transition used by
// push, sweep, and form-success paths. It reports whether a transition
// actually happened; the caller fires the notification outside the lock.
func (r *Reconciler) applyDeliveredLocked(entry models.VaultEntry) bool {
	for _, e := range r.delivered {
		if e.ID == entry.ID {
			return false
		}
	}
	r.removeUpcomingLocked(entry.ID)
	r.delivered = append([]models.VaultEntry{entry}, r.delivered...)
	r.highlightLocked(entry.ID)
	return true
}

func (r *Reconciler) removeUpcomingLocked(id string) {
	for i, e := range r.upcoming {
		if e.ID == id {
			r.upcoming = append(r.upcoming[:i], r.upcoming[i+1:]...)
			return
		}
	}
}

func (r *Reconciler) removeDeliveredLocked(id string) {
	for i, e := range r.delivered {
		if e.ID == id {
			r.delivered = append(r.delivered[:i], r.delivered[i+1:]...)
			return
		}
	}
}

// highlightLocked flags id and schedules its decay. Re-adding bumps the
// generation so only the newest timer removes the flag (last-addition-wins).
func (r *Reconciler) highlightLocked(id string) {
	r.highlightGen++
	gen := r.highlightGen
	r.highlights[id] = gen

	r.highlightFunc(r.highlightWindow, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if current, ok := r.highlights[id]; ok && current == gen {
			delete(r.highlights, id)
		}
	})
}
