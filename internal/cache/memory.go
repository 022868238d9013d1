package cache

import (
	"container/list"
	"context"
	"slices"
	"sync"
	"time"
)

// Memory is an LRU cache with a per-entry TTL.
type Memory struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time

	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

type entry struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// NewMemory creates an LRU cache holding at most maxSize entries.
func NewMemory(maxSize int, ttl time.Duration) *Memory {
	return &Memory{
		maxSize: max(maxSize, 1),
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

// Get returns a copy of the cached value.
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	item := elem.Value.(*entry)
	if c.now().After(item.expiresAt) {
		c.removeElement(elem)
		return nil, false, nil
	}
	c.lru.MoveToFront(elem)
	return slices.Clone(item.data), true, nil
}

// Set stores a copy of value, evicting the least recently used entry when
// full.
func (c *Memory) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &entry{key: key, data: slices.Clone(value), expiresAt: c.now().Add(c.ttl)}
	if elem, ok := c.items[key]; ok {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return nil
	}

	c.items[key] = c.lru.PushFront(item)
	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
	return nil
}

// Size returns the number of entries, expired ones included.
func (c *Memory) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// CleanExpired removes every expired entry and returns how many were removed.
func (c *Memory) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for elem := c.lru.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*entry).expiresAt) {
			c.removeElement(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// StartCleanup removes expired entries every interval until Close.
func (c *Memory) StartCleanup(interval time.Duration) {
	c.mu.Lock()
	if c.stopCleanup != nil {
		c.mu.Unlock()
		return
	}
	c.stopCleanup = make(chan struct{})
	c.cleanupDone = make(chan struct{})
	c.mu.Unlock()

	go func() {
		defer close(c.cleanupDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.CleanExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()
}

// Close stops the cleanup loop, if running.
func (c *Memory) Close() error {
	c.mu.Lock()
	stop, done := c.stopCleanup, c.cleanupDone
	c.stopCleanup = nil
	c.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	return nil
}

func (c *Memory) removeElement(elem *list.Element) {
	delete(c.items, elem.Value.(*entry).key)
	c.lru.Remove(elem)
}
