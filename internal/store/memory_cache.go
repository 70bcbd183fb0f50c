package store

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"github.com/serroba/shortlink/internal/shortener"
)

type cacheEntry struct {
	slug     shortener.Slug
	original string
}

// MemoryCache is a bounded in-process redirect cache with LRU eviction.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[shortener.Slug]*list.Element
}

// NewMemoryCache creates a cache holding at most capacity entries.
// A non-positive capacity means unbounded.
func NewMemoryCache(capacity int) *MemoryCache {
	return &MemoryCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[shortener.Slug]*list.Element),
	}
}

func (c *MemoryCache) Get(_ context.Context, slug shortener.Slug) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[slug]
	if !ok {
		return "", shortener.ErrCacheMiss
	}

	c.order.MoveToFront(el)

	return el.Value.(*cacheEntry).original, nil
}

func (c *MemoryCache) Set(_ context.Context, slug shortener.Slug, original string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[slug]; ok {
		el.Value.(*cacheEntry).original = original
		c.order.MoveToFront(el)

		return nil
	}

	c.entries[slug] = c.order.PushFront(&cacheEntry{slug: slug, original: original})

	if c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).slug)
	}

	return nil
}

func (c *MemoryCache) Delete(_ context.Context, slug shortener.Slug) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[slug]; ok {
		c.order.Remove(el)
		delete(c.entries, slug)
	}

	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

// MemoryCounter is an in-process shortener.Counter.
type MemoryCounter struct {
	value atomic.Int64
}

// NewMemoryCounter creates a counter whose first value is start+1.
func NewMemoryCounter(start int64) *MemoryCounter {
	c := &MemoryCounter{}
	c.value.Store(start)

	return c
}

func (c *MemoryCounter) Next(_ context.Context) (int64, error) {
	return c.value.Add(1), nil
}

// Compile-time checks.
var (
	_ shortener.Cache   = (*MemoryCache)(nil)
	_ shortener.Counter = (*MemoryCounter)(nil)
)
