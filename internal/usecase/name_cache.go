package usecase

import (
	"sync"
	"time"
)

// NameCache maps skill ids to display names for one session. With max <= 0
// and ttl <= 0 it is unbounded and never expires. Otherwise the oldest
// entries are evicted past max and entries older than ttl are ignored.
type NameCache struct {
	mu      sync.Mutex
	max     int
	ttl     time.Duration
	now     func() time.Time
	entries map[string]nameEntry
	order   []string
}

type nameEntry struct {
	name  string
	setAt time.Time
}

func NewNameCache(max int, ttl time.Duration) *NameCache {
	return &NameCache{
		max:     max,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]nameEntry),
	}
}

func (c *NameCache) Get(id string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return "", false
	}
	if c.ttl > 0 && c.now().Sub(e.setAt) > c.ttl {
		c.removeLocked(id)
		return "", false
	}
	return e.name, true
}

func (c *NameCache) Set(id, name string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok {
		c.order = append(c.order, id)
	}
	c.entries[id] = nameEntry{name: name, setAt: c.now()}

	for c.max > 0 && len(c.entries) > c.max {
		c.removeLocked(c.order[0])
	}
}

// Snapshot copies the cached names for ids; ids not cached are omitted.
func (c *NameCache) Snapshot(ids []string) map[string]string {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if name, ok := c.Get(id); ok {
			out[id] = name
		}
	}
	return out
}

func (c *NameCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *NameCache) removeLocked(id string) {
	delete(c.entries, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
