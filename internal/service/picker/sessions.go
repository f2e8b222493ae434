package picker

import (
	"log/slog"
	"sync"
	"time"

	"arbor/internal/forest"
)

// session is the in-memory state of one picker interaction. The mutex
// serializes toggles and view derivation within the session; separate
// sessions never share state.
type session struct {
	mu sync.Mutex

	id           string
	connectorID  string
	snapshotID   string
	fingerprint  string
	forest       *forest.Forest
	selection    *forest.Selection
	createdAt    time.Time
	lastActivity time.Time
}

// touch refreshes the activity timestamp. Callers hold s.mu.
func (s *session) touch() {
	s.lastActivity = time.Now().UTC()
}

// sessionRegistry tracks live sessions and expires idle ones. Reads take
// the registry lock only long enough to find the session; per-session work
// happens under the session's own mutex.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	logger   *slog.Logger
}

func newSessionRegistry(ttl, sweepInterval time.Duration, logger *slog.Logger) *sessionRegistry {
	r := &sessionRegistry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		stop:     make(chan struct{}),
		logger:   logger,
	}
	go r.sweep(sweepInterval)
	return r
}

func (r *sessionRegistry) add(s *session) {
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
}

func (r *sessionRegistry) get(id string) (*session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	return s, ok
}

func (r *sessionRegistry) remove(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	return ok
}

func (r *sessionRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// sweep periodically drops sessions idle past the TTL.
func (r *sessionRegistry) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.expire(time.Now().UTC())
		}
	}
}

// expire removes sessions whose last activity predates now-ttl.
func (r *sessionRegistry) expire(now time.Time) {
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		s.mu.Lock()
		idle := s.lastActivity.Before(cutoff)
		s.mu.Unlock()
		if idle {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, id := range expired {
		r.logger.Info("picker session expired", "session_id", id, "ttl", r.ttl)
	}
}

// Close stops the sweeper goroutine.
func (r *sessionRegistry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}
