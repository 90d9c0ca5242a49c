// Package imagecache is a bounded in-memory cache of resolved NFT image URLs.
// Each caller owns its instance; there is no package-level cache.
package imagecache

import (
	"errors"
	"time"

	"nft_grinder/internal/app/port"

	"github.com/coocood/freecache"
)

// Cache implements port.ImageURLCache on top of freecache.
type Cache struct {
	cache  *freecache.Cache
	ttl    time.Duration
	logger port.Logger
}

// New creates a cache of sizeMB megabytes. Entries expire after ttl; zero keeps them until evicted.
func New(sizeMB int, ttl time.Duration, l port.Logger) *Cache {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &Cache{
		cache:  freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:    ttl,
		logger: l,
	}
}

// Get returns the cached image URL for key.
func (c *Cache) Get(key string) (string, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) && c.logger != nil {
			c.logger.Warn("Image cache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return string(val), true
}

// Set stores imageURL under key. Entries too large for the cache are dropped.
func (c *Cache) Set(key, imageURL string) {
	if key == "" || imageURL == "" {
		return
	}
	if err := c.cache.Set([]byte(key), []byte(imageURL), int(c.ttl.Seconds())); err != nil && c.logger != nil {
		c.logger.Debug("Image cache set failed", "key", key, "error", err)
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int64 {
	return c.cache.EntryCount()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.cache.Clear()
}

var _ port.ImageURLCache = (*Cache)(nil)
