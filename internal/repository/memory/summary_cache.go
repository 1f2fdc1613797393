package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SummaryCache keeps the subject summary page warm for a short window.
// The dashboard polls it aggressively and the underlying query fans out
// per subject.
type SummaryCache struct {
	cache *cache.Cache
}

func NewSummaryCache(ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SummaryCache{
		cache: cache.New(ttl, 5*time.Minute),
	}
}

func (c *SummaryCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *SummaryCache) Set(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

func (c *SummaryCache) Invalidate(key string) {
	c.cache.Delete(key)
}
