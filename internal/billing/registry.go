package billing

import (
	"context"
	"sync"
	"time"

	"github.com/diewo77/gst-invoices/internal/models"
)

type draftEntry struct {
	mu       sync.Mutex
	draft    *Draft
	lastUsed time.Time
}

// Registry keeps the open drafts of a running server. Each draft is guarded
// by its own lock so two requests never mutate the same draft at once.
// Drafts left untouched for longer than the idle TTL are dropped by Sweep.
type Registry struct {
	mu     sync.Mutex
	ids    IDGenerator
	drafts map[int64]*draftEntry
	ttl    time.Duration
	now    func() time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIdleTTL sets how long a draft may go untouched. Zero keeps drafts
// until they are discarded or finalized.
func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) { r.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(ids IDGenerator, opts ...RegistryOption) *Registry {
	r := &Registry{ids: ids, drafts: make(map[int64]*draftEntry), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create opens a fresh draft and returns its id.
func (r *Registry) Create() int64 {
	id := r.ids.NextID()
	r.mu.Lock()
	r.drafts[id] = &draftEntry{draft: NewDraft(), lastUsed: r.now()}
	r.mu.Unlock()
	return id
}

func (r *Registry) entry(id int64) (*draftEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.drafts[id]
	return e, ok
}

// With runs fn while holding the lock of draft id.
func (r *Registry) With(id int64, fn func(d *Draft) error) error {
	e, ok := r.entry(id)
	if !ok {
		return ErrDraftNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft.Finalized() {
		return ErrDraftNotFound
	}
	// Sweep may have dropped the entry between lookup and lock.
	if cur, ok := r.entry(id); !ok || cur != e {
		return ErrDraftNotFound
	}
	e.lastUsed = r.now()
	return fn(e.draft)
}

// Discard drops a draft. It reports whether the draft existed.
func (r *Registry) Discard(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.drafts[id]
	delete(r.drafts, id)
	return ok
}

// Len returns the number of open drafts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}

// Sweep drops drafts idle for longer than the TTL and returns how many went.
// A draft whose lock is held is in use and is skipped.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.drafts {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastUsed.Before(cutoff) {
			delete(r.drafts, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// Finalize finalizes draft id and removes it from the registry on success.
func (r *Registry) Finalize(ctx context.Context, id int64, f Finalizer, accept AcceptFunc) (models.Invoice, error) {
	var inv models.Invoice
	err := r.With(id, func(d *Draft) error {
		var ferr error
		inv, ferr = d.Finalize(ctx, f, accept)
		return ferr
	})
	if err != nil {
		return models.Invoice{}, err
	}
	r.Discard(id)
	return inv, nil
}
