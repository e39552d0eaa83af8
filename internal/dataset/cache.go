package dataset

import (
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"
)

// Cache memoizes loaded tables by path, invalidated when the file's
// modification time or size changes. It is safe for concurrent use.
type Cache struct {
	opts Options

	mu      sync.Mutex
	entries map[string]cacheEntry
	loads   int
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	table   *Table
}

// NewCache returns an empty cache reading files with opts.
func NewCache(opts Options) *Cache {
	return &Cache{opts: opts, entries: make(map[string]cacheEntry)}
}

// Load returns the cached table for path, reading the file again when it
// changed. The caller owns one reference to the returned table.
func (c *Cache) Load(path string) (*Table, error) {
	info, err := os.Stat(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.evictLocked(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	if e, ok := c.entries[path]; ok {
		if e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
			e.table.Retain()
			return e.table, nil
		}
		c.evictLocked(path)
	}
	t, err := Load(path, c.opts)
	if err != nil {
		return nil, err
	}
	c.loads++
	t.Retain()
	c.entries[path] = cacheEntry{modTime: info.ModTime(), size: info.Size(), table: t}
	return t, nil
}

// Loads reports how many times a file was actually read.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

// Close drops every cached table.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for p := range c.entries {
		c.evictLocked(p)
	}
}

func (c *Cache) evictLocked(path string) {
	if e, ok := c.entries[path]; ok {
		e.table.Release()
		delete(c.entries, path)
	}
}
