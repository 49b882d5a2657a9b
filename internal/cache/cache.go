package cache

import (
	"hash/fnv"
	"io"
	"strconv"
	"sync"
	"time"
)

// Store memoizes computed tables by an argument-derived key. It is
// advisory: every cached computation is pure, so callers must behave
// identically whether a value is served from the store or recomputed.
// Invalidate when the underlying files may have changed.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	value    interface{}
	storedAt time.Time
}

// NewStore creates a store whose entries expire after ttl. A zero ttl
// disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the memoized value for key, if present and fresh.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(e.storedAt) > s.ttl {
		return nil, false
	}
	return e.value, true
}

// Set memoizes value under key, resetting its age.
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, storedAt: s.now()}
}

// Invalidate drops the entry for key, if any.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// InvalidateAll drops every entry.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

// Len reports the number of entries, including any that have expired
// but not yet been overwritten.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Key derives a stable cache key from the parts identifying a call:
// function name, folder paths, flags. Parts are length-prefixed before
// hashing so that ("ab", "c") and ("a", "bc") cannot collide.
func Key(parts ...string) string {
	h := fnv.New64a()
	for _, part := range parts {
		io.WriteString(h, strconv.Itoa(len(part)))
		io.WriteString(h, ":")
		io.WriteString(h, part)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
