package utils

import (
	"sync"

	"github.com/dolthub/swiss"
	"github.com/floatdrop/lru"
)

// Cache a concurrent safe key value store. Implementations may evict entries at any time.
type Cache[K comparable, V any] interface {
	Get(key K) (value V, ok bool)
	Set(key K, value V)
	Delete(key K)
	Clear()
	Len() int
}

type lruCache[K comparable, V any] struct {
	lock   sync.Mutex
	size   int
	values *lru.LRU[K, V]
}

// NewLRUCache a bounded Cache evicting the least recently used entry once size is reached
func NewLRUCache[K comparable, V any](size int) Cache[K, V] {
	return &lruCache[K, V]{
		size:   size,
		values: lru.New[K, V](size),
	}
}

func (c *lruCache[K, V]) Get(key K) (value V, ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if v := c.values.Get(key); v != nil {
		return *v, true
	}
	return value, false
}

func (c *lruCache[K, V]) Set(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Set(key, value)
}

func (c *lruCache[K, V]) Delete(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Remove(key)
}

func (c *lruCache[K, V]) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values = lru.New[K, V](c.size)
}

func (c *lruCache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.values.Len()
}

type mapCache[K comparable, V any] struct {
	lock   sync.RWMutex
	values *swiss.Map[K, V]
}

// NewMapCache an unbounded Cache backed by a swiss table
func NewMapCache[K comparable, V any](preAllocateSize int) Cache[K, V] {
	return &mapCache[K, V]{
		values: swiss.NewMap[K, V](uint32(max(preAllocateSize, 0))),
	}
}

func (m *mapCache[K, V]) Get(key K) (value V, ok bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.values.Get(key)
}

func (m *mapCache[K, V]) Set(key K, value V) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.values.Put(key, value)
}

func (m *mapCache[K, V]) Delete(key K) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.values.Delete(key)
}

func (m *mapCache[K, V]) Clear() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.values.Clear()
}

func (m *mapCache[K, V]) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.values.Count()
}
