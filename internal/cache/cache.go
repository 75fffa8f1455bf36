// Package cache provides a keyed in-memory store with time-to-live freshness.
package cache

import (
	"sync"
	"time"

	"github.com/vmunix/boxoffice/internal/metrics"
)

// DefaultTTL is how long an entry stays fresh when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Entry is one cached value and the time it was written.
type Entry[K comparable, V any] struct {
	Key         K
	Data        V
	LastUpdated time.Time
}

// Store holds one entry per key. Entries are replaced wholesale by Put and
// never evicted; staleness is decided at read time.
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]Entry[K, V]
	ttl     time.Duration
	now     func() time.Time
	name    string
}

// Option configures a Store.
type Option func(*options)

type options struct {
	now  func() time.Time
	name string
}

// WithClock sets the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithName labels the store in metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// New creates a store whose entries are fresh for ttl after each Put.
func New[K comparable, V any](ttl time.Duration, opts ...Option) *Store[K, V] {
	o := options{now: time.Now, name: "default"}
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[K, V]{
		entries: make(map[K]Entry[K, V]),
		ttl:     ttl,
		now:     o.now,
		name:    o.name,
	}
}

// Get returns the entry for key regardless of freshness.
func (s *Store[K, V]) Get(key K) (Entry[K, V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// Put replaces the entry for key and stamps it with the current time.
func (s *Store[K, V]) Put(key K, data V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry[K, V]{
		Key:         key,
		Data:        data,
		LastUpdated: s.now(),
	}
	metrics.CacheEntries.WithLabelValues(s.name).Set(float64(len(s.entries)))
}

// IsFresh reports whether entry was written less than one TTL ago.
func (s *Store[K, V]) IsFresh(entry Entry[K, V]) bool {
	return s.now().Sub(entry.LastUpdated) < s.ttl
}

// Fresh returns the data for key only if its entry exists and is fresh.
func (s *Store[K, V]) Fresh(key K) (V, bool) {
	entry, ok := s.Get(key)
	switch {
	case !ok:
		metrics.CacheLookups.WithLabelValues(s.name, "miss").Inc()
		var zero V
		return zero, false
	case !s.IsFresh(entry):
		metrics.CacheLookups.WithLabelValues(s.name, "stale").Inc()
		var zero V
		return zero, false
	}
	metrics.CacheLookups.WithLabelValues(s.name, "hit").Inc()
	return entry.Data, true
}

// Entries returns a snapshot of all entries.
func (s *Store[K, V]) Entries() []Entry[K, V] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry[K, V], 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// Len returns the number of entries, fresh or stale.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// TTL returns the freshness window.
func (s *Store[K, V]) TTL() time.Duration {
	return s.ttl
}
