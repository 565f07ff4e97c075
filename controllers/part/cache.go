package partcontroller

import "sync"

// specConfigCache caches computed facet configs per category. There is
// no TTL: every part write in a category must call InvalidateSpecCache
// for that category id.
type specConfigCache struct {
	mu      sync.RWMutex
	entries map[uint]map[string]FacetDescriptor
}

var facetCache = &specConfigCache{entries: make(map[uint]map[string]FacetDescriptor)}

func (c *specConfigCache) get(categoryID uint) (map[string]FacetDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	config, ok := c.entries[categoryID]
	return config, ok
}

func (c *specConfigCache) put(categoryID uint, config map[string]FacetDescriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[categoryID] = config
}

func (c *specConfigCache) invalidate(categoryID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, categoryID)
}

// InvalidateSpecCache drops the cached facet config for a category.
// Called on every part create, update or delete touching the category.
func InvalidateSpecCache(categoryID uint) {
	facetCache.invalidate(categoryID)
}
