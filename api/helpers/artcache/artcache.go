// Package artcache holds a small cache of cover art payloads keyed by their
// source URL, so that repeated polling of an unchanged track does not re-read
// the artwork on every query.
package artcache

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// defaultMaxEntries bounds the cache size. Players rarely cycle through
// more than a handful of distinct artwork URLs within one session.
const defaultMaxEntries = 16

// FetchFunc describes a function that resolves an artwork URL to its raw
// byte payload.
type FetchFunc func(url string) ([]byte, error)

// Cache describes a store of resolved cover art payloads.
type Cache struct {
	covers     *xsync.MapOf[string, []byte]
	maxEntries int
}

// NewCache returns a new Cache.
func NewCache() *Cache {
	return &Cache{
		covers:     xsync.NewMapOf[string, []byte](),
		maxEntries: defaultMaxEntries,
	}
}

// Cover returns the cover art payload for the provided URL, resolving and
// storing it with fetch on a cache miss. Fetch errors are not cached.
func (c *Cache) Cover(url string, fetch FetchFunc) ([]byte, error) {
	if cover, ok := c.covers.Load(url); ok {
		return cover, nil
	}

	cover, err := fetch(url)
	if err != nil {
		return nil, err
	}

	if c.covers.Size() >= c.maxEntries {
		c.covers.Clear()
	}
	c.covers.Store(url, cover)

	return cover, nil
}

// Invalidate removes the cover art payload for the provided URL.
func (c *Cache) Invalidate(url string) {
	c.covers.Delete(url)
}
