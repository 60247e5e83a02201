package format

import (
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"cefmt/internal/element"
)

// Cache memoizes Analyze by profile and format string. It is safe for
// concurrent use; concurrent misses on one key run a single analysis.
type Cache struct {
	entries sync.Map // cacheKey -> cacheEntry
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// Default is the process-wide cache.
var Default = &Cache{}

type cacheKey struct {
	profile element.Profile
	s       string
}

type cacheEntry struct {
	f   *Format
	err error
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Get returns the analysis of s, computing it at most once per key.
// Errors are cached as well.
func (c *Cache) Get(s string, opts Options) (*Format, error) {
	opts = opts.withDefaults()
	key := cacheKey{profile: opts.Profile, s: s}
	if v, ok := c.entries.Load(key); ok {
		c.hits.Add(1)
		ent := v.(cacheEntry)
		return ent.f, ent.err
	}

	v, _, _ := c.group.Do(groupKey(key), func() (any, error) {
		if v, ok := c.entries.Load(key); ok {
			return v, nil
		}
		c.misses.Add(1)
		f, err := Analyze(s, opts)
		ent := cacheEntry{f: f, err: err}
		c.entries.Store(key, ent)
		return ent, nil
	})
	ent := v.(cacheEntry)
	return ent.f, ent.err
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.entries.Clear()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.Len(),
	}
}

func groupKey(k cacheKey) string {
	return strconv.Itoa(int(k.profile)) + ":" + k.s
}
