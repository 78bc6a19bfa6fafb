package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	width   int
	expires time.Time
}

// MemoryCache is the in-process ProbeCache used when Redis is not configured.
type MemoryCache struct {
	mu     sync.RWMutex
	data   map[string]entry
	prefix string
	now    func() time.Time
}

func NewMemoryCache(prefix string) *MemoryCache {
	return &MemoryCache{
		data:   make(map[string]entry),
		prefix: prefix,
		now:    time.Now,
	}
}

func (m *MemoryCache) Close() error {
	return nil
}

func (m *MemoryCache) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]entry)
	return nil
}

func (m *MemoryCache) GetWidth(_ context.Context, imageURL string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[widthKey(m.prefix, imageURL)]
	if !ok || (!e.expires.IsZero() && m.now().After(e.expires)) {
		return 0, false, nil
	}
	return e.width, true, nil
}

func (m *MemoryCache) SetWidth(_ context.Context, imageURL string, width int, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{width: width}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.data[widthKey(m.prefix, imageURL)] = e
	return nil
}
