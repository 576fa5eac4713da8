package server

import (
	"strings"

	"github.com/bastiangx/anaserve/pkg/anagram"
	"github.com/bastiangx/anaserve/pkg/dictionary"
	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedResult struct {
	index  *dictionary.Index
	result anagram.Result
}

// ResultCache keeps recent solve results. Results are bound to the index
// that produced them and are treated as read-only once cached.
// A nil *ResultCache is a disabled cache.
type ResultCache struct {
	entries *lru.Cache[string, cachedResult]
}

// NewResultCache creates a cache holding up to size results.
// It returns nil when size is not positive.
func NewResultCache(size int) *ResultCache {
	if size <= 0 {
		return nil
	}
	entries, err := lru.New[string, cachedResult](size)
	if err != nil {
		return nil
	}
	return &ResultCache{entries: entries}
}

func cacheKey(key string, mode anagram.Mode) string {
	return mode.String() + ":" + strings.ToLower(key)
}

// Get returns the cached result of key, if it was computed against idx.
func (c *ResultCache) Get(idx *dictionary.Index, key string, mode anagram.Mode) (anagram.Result, bool) {
	if c == nil {
		return nil, false
	}
	cached, ok := c.entries.Get(cacheKey(key, mode))
	if !ok || cached.index != idx {
		return nil, false
	}
	return cached.result, true
}

// Add stores result for key.
func (c *ResultCache) Add(idx *dictionary.Index, key string, mode anagram.Mode, result anagram.Result) {
	if c == nil {
		return
	}
	c.entries.Add(cacheKey(key, mode), cachedResult{index: idx, result: result})
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
