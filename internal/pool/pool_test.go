package pool

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, p *Pool, n int) []Result {
	t.Helper()
	results := make([]Result, 0, n)
	timeout := time.After(5 * time.Second)
	for len(results) < n {
		select {
		case res := <-p.Results():
			results = append(results, res)
		case <-timeout:
			t.Fatalf("timed out waiting for results, got %d of %d", len(results), n)
		}
	}
	return results
}

func TestRunsTasksAndDeliversResults(t *testing.T) {
	p := New(2, 8)
	defer p.Close()

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	for i := 0; i < 5; i++ {
		p.Submit(Task{
			ID:   fmt.Sprintf("task-%d", i),
			Path: fmt.Sprintf("/img/%d.jpg", i),
			Run:  func() (image.Image, error) { return img, nil },
		})
	}

	results := collect(t, p, 5)
	paths := make(map[string]bool)
	for _, res := range results {
		assert.True(t, res.OK)
		assert.Same(t, img, res.Image)
		paths[res.Path] = true
	}
	assert.Len(t, paths, 5)
}

func TestFailedTaskDeliversNotOK(t *testing.T) {
	p := New(1, 4)
	defer p.Close()

	p.Submit(Task{
		ID:   "bad",
		Path: "/img/broken.jpg",
		Run:  func() (image.Image, error) { return nil, errors.New("decode failed") },
	})

	res := collect(t, p, 1)[0]
	assert.False(t, res.OK)
	assert.Nil(t, res.Image)
	assert.Equal(t, "/img/broken.jpg", res.Path)
}

func TestConcurrencyIsBounded(t *testing.T) {
	const workers = 2
	p := New(workers, 16)
	defer p.Close()

	var current, peak atomic.Int32
	for i := 0; i < 8; i++ {
		p.Submit(Task{
			ID:   fmt.Sprintf("task-%d", i),
			Path: fmt.Sprintf("/img/%d.jpg", i),
			Run: func() (image.Image, error) {
				n := current.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				current.Add(-1)
				return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
			},
		})
	}

	collect(t, p, 8)
	assert.LessOrEqual(t, peak.Load(), int32(workers))
	assert.Positive(t, peak.Load())
}

func TestCloseIsIdempotentAndRejectsSubmits(t *testing.T) {
	p := New(1, 4)
	p.Close()
	require.NotPanics(t, p.Close)

	// Dropped, not queued; nothing to assert beyond no panic and no hang.
	require.NotPanics(t, func() {
		p.Submit(Task{ID: "late", Path: "/img/late.jpg", Run: func() (image.Image, error) {
			return nil, nil
		}})
	})

	_, open := <-p.Results()
	assert.False(t, open, "results channel should be closed")
}

func TestNonPositiveWorkerCountPanics(t *testing.T) {
	assert.Panics(t, func() { New(0, 4) })
}
