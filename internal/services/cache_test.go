package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGetDelete(t *testing.T) {
	cache := NewCache()

	cache.Set("profile:1", "value", time.Minute)
	got, ok := cache.Get("profile:1")
	require.True(t, ok)
	assert.Equal(t, "value", got)

	cache.Delete("profile:1")
	_, ok = cache.Get("profile:1")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache()

	cache.Set("profile:2", "value", 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	_, ok := cache.Get("profile:2")
	assert.False(t, ok)
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	cache := NewCache()
	_, ok := cache.Get("profile:404")
	assert.False(t, ok)
}

func TestProfileCacheKey(t *testing.T) {
	assert.Equal(t, "profile:42", ProfileCacheKey(42))
}
