package cache

import (
	"sync"
	"time"
)

// entry 带过期时间的缓存项
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Cache 带TTL的内存键值缓存
// 仅作临时存储: 内容丢失只会让调用方从头重算,不会破坏已落库的数据
type Cache struct {
	store      sync.Map
	defaultTTL time.Duration
	stopChan   chan struct{}
	stopOnce   sync.Once
}

// New 创建缓存并启动后台清理
func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		defaultTTL: defaultTTL,
		stopChan:   make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Get 读取键值,过期或不存在返回false
func (c *Cache) Get(key string) ([]byte, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		return nil, false
	}
	return e.data, true
}

// Set 以默认TTL写入键值
func (c *Cache) Set(key string, value []byte) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL 以指定TTL写入键值
func (c *Cache) SetWithTTL(key string, value []byte, ttl time.Duration) {
	c.store.Store(key, entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	})
}

// Delete 删除键值
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Stop 停止后台清理
func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

// startCleanup 周期性清除过期项
func (c *Cache) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, val interface{}) bool {
				if now.After(val.(entry).expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
