package match

import (
	"sync"

	"rfq-match/internal/model"
)

// CacheKey 标识一份匹配结果对应的输入版本。
// 需求版本或目录版本任一变化，缓存即失效。
type CacheKey struct {
	RequirementVersion string
	CatalogVersion     int64
}

// Cache 按 RFQ 缓存匹配结果。匹配结果只是缓存，不是权威数据，
// 命中要求键完全一致。
type Cache struct {
	mu      sync.RWMutex
	entries map[uint]cacheEntry
}

type cacheEntry struct {
	key     CacheKey
	matches []model.MatchResult
}

// NewCache 创建空缓存。
func NewCache() *Cache {
	return &Cache{entries: make(map[uint]cacheEntry)}
}

// Get 返回 RFQ 在指定版本下的缓存结果。
func (c *Cache) Get(rfqID uint, key CacheKey) ([]model.MatchResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[rfqID]
	if !ok || e.key != key {
		return nil, false
	}
	return e.matches, true
}

// Put 写入 RFQ 的匹配结果，覆盖旧版本。
func (c *Cache) Put(rfqID uint, key CacheKey, matches []model.MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[rfqID] = cacheEntry{key: key, matches: matches}
}

// Invalidate 丢弃指定 RFQ 的缓存。
func (c *Cache) Invalidate(rfqID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, rfqID)
}
