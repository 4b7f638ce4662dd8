package pagecache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync"
)

type memoryEntry struct {
	value     []byte
	expiredAt time.Time
}

type memoryCache struct {
	entries *xsync.MapOf[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryCache() *memoryCache {
	return &memoryCache{
		entries: xsync.NewMapOf[memoryEntry](),
		now:     time.Now,
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, ok := c.entries.Load(key)
	if !ok {
		return nil, false, nil
	}

	if !c.now().Before(entry.expiredAt) {
		c.entries.Delete(key)
		return nil, false, nil
	}

	return entry.value, true, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	b := make([]byte, len(value))
	copy(b, value)

	c.sweep()
	c.entries.Store(key, memoryEntry{value: b, expiredAt: c.now().Add(ttl)})
	return nil
}

// sweep drops the expired entries which were never read again.
func (c *memoryCache) sweep() {
	now := c.now()
	c.entries.Range(func(key string, entry memoryEntry) bool {
		if !now.Before(entry.expiredAt) {
			c.entries.Delete(key)
		}
		return true
	})
}

func (c *memoryCache) Clear(ctx context.Context) error {
	c.entries.Range(func(key string, _ memoryEntry) bool {
		c.entries.Delete(key)
		return true
	})

	return nil
}
