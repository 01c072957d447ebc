package http

import (
	"context"
	"sync"
	"time"

	"github.com/med-integems/lomemis-dashboard/internal/application/dashboard"
)

// Registry holds mounted dashboard sessions keyed by user id. Sessions idle
// longer than ttl are dropped; the next request simply mounts a fresh one.
// Credentials are never stored here, every request carries its own token.
type Registry struct {
	mu      sync.Mutex
	entries map[int64]*registryEntry
	ttl     time.Duration
	now     func() time.Time
}

type registryEntry struct {
	sess     *dashboard.Session
	lastSeen time.Time
}

// NewRegistry builds an empty registry. ttl <= 0 disables expiry.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[int64]*registryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the live session for userID, refreshing its idle clock.
// Expired entries are deleted lazily.
func (r *Registry) Get(userID int64) (*dashboard.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[userID]
	if !ok {
		return nil, false
	}
	if r.expiredLocked(e) {
		delete(r.entries, userID)
		return nil, false
	}
	e.lastSeen = r.now()
	return e.sess, true
}

// PutIfAbsent installs s unless a live session is already registered and
// returns the canonical one, so concurrent mounts for the same viewer
// converge on a single session.
func (r *Registry) PutIfAbsent(userID int64, s *dashboard.Session) *dashboard.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[userID]; ok && !r.expiredLocked(e) {
		e.lastSeen = r.now()
		return e.sess
	}
	r.entries[userID] = &registryEntry{sess: s, lastSeen: r.now()}
	return s
}

// Delete drops the session for userID, if any.
func (r *Registry) Delete(userID int64) {
	r.mu.Lock()
	delete(r.entries, userID)
	r.mu.Unlock()
}

// Len reports how many sessions are registered, expired ones included until
// the next sweep.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) expiredLocked(e *registryEntry) bool {
	return r.ttl > 0 && e.lastSeen.Add(r.ttl).Before(r.now())
}

// StartSweeper launches a background goroutine that periodically drops idle
// sessions. It stops when ctx is done.
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.mu.Lock()
				for id, e := range r.entries {
					if r.expiredLocked(e) {
						delete(r.entries, id)
					}
				}
				r.mu.Unlock()
			}
		}
	}()
}
