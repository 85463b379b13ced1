package corpus

import "sync"

// Cache memoizes loaded corpora by name. Entries stay until
// invalidated, so interactive consumers reload only on demand.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Corpus
}

// NewCache returns an empty corpus cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Corpus)}
}

// Get returns the cached corpus for name, calling load on a miss.
// A failed load caches nothing.
func (c *Cache) Get(name string, load func() (*Corpus, error)) (*Corpus, error) {
	c.mu.Lock()
	cached, ok := c.entries[name]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}
	loaded, err := load()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[name] = loaded
	c.mu.Unlock()
	return loaded, nil
}

// Invalidate drops the cached corpus for name, if any.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}
