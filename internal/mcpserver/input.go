package mcpserver

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/internal/options"
	"github.com/zeebo/xxh3"
)

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an API description file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline API description content (JSON or YAML)"`
}

// cacheEntry holds a cached document with LRU ordering and TTL expiry.
type cacheEntry struct {
	doc       *apidoc.Document
	insertAt  time.Time
	expiresAt time.Time
}

// specCacheStore provides a session-scoped cache for decoded documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by an xxh3-128 hash. Cached documents are shared, so callers must not
// mutate them.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *apidoc.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.doc
	}
	return nil
}

// putWithTTL stores a document with a specific TTL, evicting the least
// recently used entry if at capacity.
func (c *specCacheStore) putWithTTL(key string, doc *apidoc.Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{doc: doc, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper; it stops when ctx
// is cancelled.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input, or "" when the
// input cannot be cached.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		sum := xxh3.HashString128(s.Content).Bytes()
		return "content:" + hex.EncodeToString(sum[:])
	default:
		return ""
	}
}

// resolve decodes the document from whichever input was provided, using
// the cache when it is enabled.
func (s specInput) resolve() (*apidoc.Document, error) {
	const sourceMsg = "exactly one of file or content must be provided"
	if err := options.ValidateSingleInputSource("spec", sourceMsg, sourceMsg, s.File != "", s.Content != ""); err != nil {
		return nil, err
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %s exceeds maximum %s; use file input instead, or set APIDIFF_MCP_MAX_INLINE_SIZE to increase",
			apidoc.FormatBytes(int64(len(s.Content))), apidoc.FormatBytes(cfg.MaxInlineSize))
	}

	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		if s.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}

	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var (
		doc *apidoc.Document
		err error
	)
	if s.File != "" {
		doc, err = apidoc.ParseFile(s.File)
	} else {
		doc, err = apidoc.Parse([]byte(s.Content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		specCache.putWithTTL(key, doc, ttl)
	}
	return doc, nil
}
