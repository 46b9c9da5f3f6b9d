package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(time.Hour)

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	assert.True(t, found)
	assert.Equal(t, "value1", val)
}

func TestCache_GetMissing(t *testing.T) {
	c := New(time.Hour)

	val, found := c.Get("nonexistent")
	assert.False(t, found)
	assert.Nil(t, val)
}

func TestCache_Expiration(t *testing.T) {
	c := New(50 * time.Millisecond)

	c.Set("key", "value")

	val, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", val)

	time.Sleep(100 * time.Millisecond)

	val, found = c.Get("key")
	assert.False(t, found)
	assert.Nil(t, val)
}

func TestCache_GetOrSetSamplesOnce(t *testing.T) {
	c := New(time.Hour)

	calls := 0
	sample := func() (interface{}, error) {
		calls++
		return 8, nil
	}

	v, err := c.GetOrSet(KeyCores, sample)
	require.NoError(t, err)
	assert.Equal(t, 8, v)

	// second section reuses the reading
	v, err = c.GetOrSet(KeyCores, sample)
	require.NoError(t, err)
	assert.Equal(t, 8, v)
	assert.Equal(t, 1, calls)
}

func TestCache_GetOrSetError(t *testing.T) {
	c := New(time.Hour)

	_, err := c.GetOrSet("k", func() (interface{}, error) {
		return nil, errors.New("source unavailable")
	})
	assert.Error(t, err)

	// a failed read is not cached
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestCache_Delete(t *testing.T) {
	c := New(time.Hour)

	c.Set("key", "value")
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestNewSampleCache(t *testing.T) {
	sc := NewSampleCache()
	require.NotNil(t, sc)

	sc.Set(KeyLoad, 0.5)
	v, found := sc.Get(KeyLoad)
	assert.True(t, found)
	assert.Equal(t, 0.5, v)
}
