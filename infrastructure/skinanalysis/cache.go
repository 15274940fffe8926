package skinanalysis

import (
	"container/list"
	"crypto/md5"
	"encoding/hex"
	"sync"
)

// DefaultCacheCapacity bounds the number of stored results.
const DefaultCacheCapacity = 50

// Digest returns the hex md5 of the image bytes. It is used as a content
// address, not as a security primitive.
func Digest(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

type cacheEntry struct {
	key    string
	result AnalysisResult
}

// ResultCache maps image digests to analysis results. Once the number of
// entries exceeds the capacity the oldest inserted entry is evicted;
// reads do not change eviction order.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

func NewResultCache(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &ResultCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

func (c *ResultCache) Get(key string) (AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return AnalysisResult{}, false
	}
	return el.Value.(*cacheEntry).result, true
}

// Put stores a result. Re-inserting an existing key replaces the value but
// keeps its original insertion position.
func (c *ResultCache) Put(key string, result AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).result = result
		return
	}
	c.entries[key] = c.order.PushBack(&cacheEntry{key: key, result: result})
	if c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *ResultCache) Capacity() int {
	return c.capacity
}
