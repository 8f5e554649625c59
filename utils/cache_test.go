package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCache(t *testing.T, cache Cache[string, int]) {
	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("a", 1)
	cache.Set("b", 2)

	v, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, cache.Len())

	cache.Delete("a")
	_, ok = cache.Get("a")
	assert.False(t, ok)

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestLRUCache(t *testing.T) {
	testCache(t, NewLRUCache[string, int](16))

	cache := NewLRUCache[string, int](4)
	for i := range 8 {
		cache.Set(strconv.Itoa(i), i)
	}
	assert.Equal(t, 4, cache.Len())
	_, ok := cache.Get("0")
	assert.False(t, ok, "oldest entry must be evicted")
	v, ok := cache.Get("7")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	cache.Delete("7")
	cache.Delete("missing")
	assert.Equal(t, 3, cache.Len())
	_, ok = cache.Get("7")
	assert.False(t, ok)
}

func TestMapCache(t *testing.T) {
	testCache(t, NewMapCache[string, int](0))
}
