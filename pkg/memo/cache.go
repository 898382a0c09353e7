package memo

import (
	"context"
	"sync"
)

// Cache 记忆化结果的存储
// ok为false表示未命中;err只表示后端故障
type Cache[R any] interface {
	Get(ctx context.Context, key string) (value R, ok bool, err error)
	Set(ctx context.Context, key string, value R) error
}

// MapCache 进程内缓存,无上限、不清理
type MapCache[R any] struct {
	mu      sync.RWMutex
	entries map[string]R
}

// NewMapCache 创建进程内缓存
func NewMapCache[R any]() *MapCache[R] {
	return &MapCache[R]{entries: make(map[string]R)}
}

func (c *MapCache[R]) Get(_ context.Context, key string) (R, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *MapCache[R]) Set(_ context.Context, key string, value R) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
	return nil
}

// Len 已缓存的条目数
func (c *MapCache[R]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
