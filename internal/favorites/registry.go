package favorites

import (
	"context"
	"sync"
	"time"
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Registry owns one Store per browser session and forgets sessions
// that have been idle for longer than the configured duration.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	idle     time.Duration
	now      func() time.Time
}

// NewRegistry creates a registry. An idle duration <= 0 keeps sessions forever.
func NewRegistry(idle time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		idle:     idle,
		now:      time.Now,
	}
}

// Store returns the store for id, creating it on first use.
func (r *Registry) Store(id string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &session{store: NewStore()}
		r.sessions[id] = s
	}
	s.lastSeen = r.now()
	return s.store
}

// Lookup returns the store for id without creating one.
func (r *Registry) Lookup(id string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.store, true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
