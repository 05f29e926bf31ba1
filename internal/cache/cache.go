// Package cache implements the bounded LRU store of rendered thumbnails.
//
// The structure is the classic hash map plus doubly linked recency list, so
// Get, Put, Remove and the eviction inside Put are all O(1). The cache does
// no locking: every caller goes through the gallery loop goroutine, which is
// the single writer by construction.
package cache

import (
	"container/list"
	"fmt"
	"image"
)

type entry struct {
	path string
	img  image.Image
}

// Cache maps image paths to rendered, border-less thumbnails with LRU
// eviction at a fixed capacity.
type Cache struct {
	capacity int
	order    *list.List // front = most recently used
	items    map[string]*list.Element
}

// New creates a cache holding at most capacity entries. A non-positive
// capacity is a programming defect and panics.
func New(capacity int) *Cache {
	if capacity <= 0 {
		panic(fmt.Sprintf("cache: capacity must be positive, got %d", capacity))
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached thumbnail and promotes it to most recently used.
// A miss has no side effect.
func (c *Cache) Get(path string) (image.Image, bool) {
	el, ok := c.items[path]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).img, true
}

// Put stores a thumbnail. An existing key is replaced and promoted; a new
// key at capacity first evicts the least recently used entry.
func (c *Cache) Put(path string, img image.Image) {
	if el, ok := c.items[path]; ok {
		el.Value.(*entry).img = img
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).path)
		}
	}

	c.items[path] = c.order.PushFront(&entry{path: path, img: img})
}

// Remove drops one entry. Absent keys are a no-op.
func (c *Cache) Remove(path string) {
	if el, ok := c.items[path]; ok {
		c.order.Remove(el)
		delete(c.items, path)
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.order.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// Len reports the current entry count.
func (c *Cache) Len() int {
	return c.order.Len()
}

// Capacity reports the configured bound.
func (c *Cache) Capacity() int {
	return c.capacity
}
