package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Store keeps one token bucket per key. Buckets that have not been used for
// idleTTL are evicted by a background cleanup loop until Close is called.
type Store struct {
	mutex   sync.Mutex
	entries map[string]*entry

	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	now  func() time.Time
	done chan struct{}
	once sync.Once
}

func NewStore(requestsPerSecond float64, burst int, idleTTL, cleanupInterval time.Duration) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go s.cleanupLoop(cleanupInterval)
	}

	return s
}

// Allow reports whether a request for key may proceed now.
func (s *Store) Allow(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = e
	}

	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (s *Store) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.entries)
}

// Cleanup evicts every bucket idle for longer than idleTTL.
func (s *Store) Cleanup() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if now.Sub(e.lastSeen) > s.idleTTL {
			delete(s.entries, key)
		}
	}
}

func (s *Store) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.done:
			return
		}
	}
}
