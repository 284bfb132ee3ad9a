package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     []byte
	writtenAt time.Time
	ttl       time.Duration
}

func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.writtenAt) > e.ttl
}

// TTLCache 进程内 key -> 字节缓存，写入后超过 TTL 即不可见。
// 过期在 Get 时惰性判断，另可由定时任务调用 PurgeExpired 清理。
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]*entry

	now func() time.Time
}

func NewTTLCache() *TTLCache {
	return &TTLCache{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Get 返回未过期的值；过期条目顺手删除
func (c *TTLCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if e.expired(c.now()) {
		c.mu.Lock()
		// 重新检查，期间可能已被覆盖写
		if cur, ok := c.entries[key]; ok && cur.expired(c.now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set 写入并重置过期时钟，已有 key 整体替换
func (c *TTLCache) Set(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = &entry{value: value, writtenAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

func (c *TTLCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// PurgeExpired 扫描并删除所有过期条目
func (c *TTLCache) PurgeExpired() {
	now := c.now()
	c.mu.Lock()
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
