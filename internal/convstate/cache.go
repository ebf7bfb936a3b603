// ABOUTME: Memoizing wrapper around Track backed by patrickmn/go-cache
// ABOUTME: Keys combine history length, a digest of the long-term window, and the utterance

package convstate

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCacheTTL bounds how long a memoized state lives.
const DefaultCacheTTL = 10 * time.Minute

// purgeEvery is the number of misses between sweeps of expired entries.
const purgeEvery = 256

// Cache memoizes Track. It is safe for concurrent use and never changes
// the result Track would return.
//
// The store runs without a janitor goroutine: expired entries are never
// returned, and misses sweep them out periodically.
type Cache struct {
	store  *gocache.Cache
	misses atomic.Uint64
}

// NewCache returns a cache whose entries expire after ttl. A non-positive
// ttl selects DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{store: gocache.New(ttl, 0)}
}

// Track returns the memoized state for (history, utterance), computing it
// on a miss.
func (c *Cache) Track(history History, utterance string) State {
	key := cacheKey(history, utterance)
	if v, ok := c.store.Get(key); ok {
		return clone(v.(State))
	}
	if c.misses.Add(1)%purgeEvery == 0 {
		c.store.DeleteExpired()
	}
	s := Track(history, utterance)
	c.store.SetDefault(key, clone(s))
	return s
}

// Len returns the number of stored entries, including expired ones not
// yet swept.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.store.Flush()
}

// cacheKey covers everything Track reads: the long-term window (which
// contains the working-memory window) plus the utterance.
func cacheKey(history History, utterance string) string {
	h := sha256.New()
	for _, t := range history.Tail(LongTermSize) {
		h.Write([]byte(t.Role))
		h.Write([]byte{0})
		h.Write([]byte(t.Content))
		h.Write([]byte{0})
	}
	h.Write([]byte(utterance))
	return strconv.Itoa(len(history)) + ":" + hex.EncodeToString(h.Sum(nil))
}

// clone copies the slices so callers cannot alias cached state.
func clone(s State) State {
	s.WorkingMemory = append([]string(nil), s.WorkingMemory...)
	s.LongTerm = append([]string(nil), s.LongTerm...)
	return s
}
