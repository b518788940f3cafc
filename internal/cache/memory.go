package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sevigo/pr-tracker/internal/core"
)

// MemoryCache is a process-local FailingChecks backed by go-cache.
type MemoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache creates a cache whose entries expire after ttl. A zero ttl never expires.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		return &MemoryCache{c: gocache.New(gocache.NoExpiration, 0)}
	}
	return &MemoryCache{c: gocache.New(ttl, 2*ttl)}
}

func (m *MemoryCache) Get(ref core.PRRef) ([]core.CheckResult, bool, error) {
	v, ok := m.c.Get(key(ref))
	if !ok {
		return nil, false, nil
	}
	return clone(v.([]core.CheckResult)), true, nil
}

func (m *MemoryCache) Set(ref core.PRRef, failing []core.CheckResult) error {
	m.c.SetDefault(key(ref), clone(failing))
	return nil
}

func (m *MemoryCache) Delete(ref core.PRRef) error {
	m.c.Delete(key(ref))
	return nil
}
