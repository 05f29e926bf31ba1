package cache

import (
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(side int) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, side, side))
}

func TestGetMissHasNoSideEffect(t *testing.T) {
	c := New(2)

	img, ok := c.Get("/a.jpg")
	assert.False(t, ok)
	assert.Nil(t, img)
	assert.Equal(t, 0, c.Len())
}

func TestPutAndGet(t *testing.T) {
	c := New(2)
	want := testImage(10)

	c.Put("/a.jpg", want)
	got, ok := c.Get("/a.jpg")
	require.True(t, ok)
	assert.Same(t, want, got)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(3)
	c.Put("img1", testImage(1))
	c.Put("img2", testImage(2))
	c.Put("img3", testImage(3))

	// Touch img1 so img2 becomes the oldest.
	_, ok := c.Get("img1")
	require.True(t, ok)

	c.Put("img4", testImage(4))

	_, ok = c.Get("img2")
	assert.False(t, ok, "img2 should have been evicted")
	for _, path := range []string{"img1", "img3", "img4"} {
		_, ok := c.Get(path)
		assert.True(t, ok, "%s should still be cached", path)
	}
	assert.Equal(t, 3, c.Len())
}

func TestPutExistingPromotesAndReplaces(t *testing.T) {
	c := New(2)
	c.Put("a", testImage(1))
	c.Put("b", testImage(2))

	replacement := testImage(3)
	c.Put("a", replacement)

	// "a" is now most recent, so inserting "c" evicts "b".
	c.Put("c", testImage(4))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestNeverExceedsCapacity(t *testing.T) {
	c := New(5)
	for i := 0; i < 50; i++ {
		c.Put(fmt.Sprintf("img%d", i), testImage(1))
		assert.LessOrEqual(t, c.Len(), 5)
	}
	assert.Equal(t, 5, c.Len())
}

func TestRemoveAndClearAreIdempotent(t *testing.T) {
	c := New(2)

	assert.NotPanics(t, func() { c.Remove("/missing.jpg") })
	assert.NotPanics(t, func() { c.Clear() })
	assert.Equal(t, 0, c.Len())

	c.Put("a", testImage(1))
	c.Remove("a")
	c.Remove("a")
	assert.Equal(t, 0, c.Len())

	c.Put("a", testImage(1))
	c.Put("b", testImage(2))
	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)

	// Reusable after clear.
	c.Put("c", testImage(3))
	assert.Equal(t, 1, c.Len())
}

func TestNonPositiveCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { New(-1) })
}
