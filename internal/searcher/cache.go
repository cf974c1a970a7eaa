package searcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/docsearch/pkg/types"
)

// DefaultCacheSize is the number of cached searches kept when none is configured
const DefaultCacheSize = 128

// keySeparator cannot appear in keywords typed by users
const keySeparator = "\x1f"

// ResultCache memoizes ranked results by keyword set with LRU eviction.
// Values are copied on the way in and out so callers can never mutate a
// cached entry.
type ResultCache struct {
	entries  *lru.Cache[string, []types.Result]
	capacity int

	hits   atomic.Int64
	misses atomic.Int64
}

// NewResultCache creates a cache holding up to size searches
func NewResultCache(size int) *ResultCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, []types.Result](size)
	if err != nil {
		// This should never happen with valid size parameter
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}
	return &ResultCache{entries: entries, capacity: size}
}

// Get returns a copy of the results cached under key
func (c *ResultCache) Get(key string) ([]types.Result, bool) {
	results, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return types.CopyResults(results), true
}

// Put stores a copy of results under key, evicting the least recently used
// entry when full
func (c *ResultCache) Put(key string, results []types.Result) {
	if results == nil {
		results = []types.Result{}
	}
	c.entries.Add(key, types.CopyResults(results))
}

// Keys returns the cached keys, oldest first
func (c *ResultCache) Keys() []string {
	return c.entries.Keys()
}

// Len returns the number of cached searches
func (c *ResultCache) Len() int {
	return c.entries.Len()
}

// Capacity returns the maximum number of cached searches
func (c *ResultCache) Capacity() int {
	return c.capacity
}

// Purge drops every entry. Hit and miss counters are kept.
func (c *ResultCache) Purge() {
	c.entries.Purge()
}

// Hits returns the number of successful lookups
func (c *ResultCache) Hits() int64 {
	return c.hits.Load()
}

// Misses returns the number of failed lookups
func (c *ResultCache) Misses() int64 {
	return c.misses.Load()
}

// CacheKey derives the cache key of a keyword set. Order and duplicates do
// not affect the key.
func CacheKey(keywords []string) string {
	unique := NormalizeKeywords(keywords)
	sort.Strings(unique)

	sum := sha256.Sum256([]byte(strings.Join(unique, keySeparator)))
	return hex.EncodeToString(sum[:])
}

// NormalizeKeywords drops blank and repeated keywords, keeping the first
// occurrence of each
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
