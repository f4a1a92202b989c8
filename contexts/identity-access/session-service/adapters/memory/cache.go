package memory

import (
	"sync"
	"time"

	"simpleq/contexts/identity-access/session-service/domain/entities"
)

type cacheEntry struct {
	session   entities.Session
	expiresAt time.Time
}

// Cache keeps resolved sessions until they expire.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func (c *Cache) Get(key string, now time.Time) (entities.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return entities.Session{}, false
	}
	if !now.Before(entry.expiresAt) {
		delete(c.entries, key)
		return entities.Session{}, false
	}
	return entry.session, true
}

func (c *Cache) Put(key string, session entities.Session, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{session: session, expiresAt: expiresAt}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
