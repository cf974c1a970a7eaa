package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/dshills/docsearch/pkg/types"
)

// DefaultCacheSize is the number of parsed documents kept when no size is given
const DefaultCacheSize = 256

// cachedDocument remembers the file state a document was parsed from
type cachedDocument struct {
	doc     *DocxDocument
	modTime time.Time
	size    int64
}

// Cache keeps parsed documents by absolute path with LRU eviction.
// A cached document is reused only while the file's modification time and
// size are unchanged. Concurrent first loads of one path parse it once.
type Cache struct {
	parser *Parser
	docs   *lru.Cache[string, *cachedDocument]
	group  singleflight.Group
	size   int

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports document cache usage
type CacheStats struct {
	Entries  int   `json:"entries"`
	Capacity int   `json:"capacity"`
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
}

// NewCache creates a document cache holding up to size documents
func NewCache(size int, p *Parser) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if p == nil {
		p = New()
	}
	docs, err := lru.New[string, *cachedDocument](size)
	if err != nil {
		// Should never happen with positive size
		panic(fmt.Sprintf("failed to create document cache: %v", err))
	}
	return &Cache{parser: p, docs: docs, size: size}
}

// Load returns the parsed document at path, parsing it on first access or
// when the file changed since it was cached
func (c *Cache) Load(path string) (types.Document, error) {
	key := cacheKey(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if entry, ok := c.docs.Get(key); ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		c.hits.Add(1)
		return entry.doc, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		doc, err := c.parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
		c.docs.Add(key, &cachedDocument{doc: doc, modTime: info.ModTime(), size: info.Size()})
		return doc, nil
	})
	c.misses.Add(1)
	if err != nil {
		return nil, err
	}

	return v.(*DocxDocument), nil
}

// Invalidate drops the cached document for path
func (c *Cache) Invalidate(path string) bool {
	return c.docs.Remove(cacheKey(path))
}

// Purge drops every cached document
func (c *Cache) Purge() {
	c.docs.Purge()
}

// Len returns the number of cached documents
func (c *Cache) Len() int {
	return c.docs.Len()
}

// Stats returns cache usage counters
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries:  c.docs.Len(),
		Capacity: c.size,
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
	}
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
