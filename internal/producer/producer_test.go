package producer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/thumbgrid/internal/overlay"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		bound        int
		wantW, wantH int
	}{
		{"landscape 4k", 3840, 2160, 2048, 2048, 1152},
		{"portrait 4k", 2160, 3840, 2048, 1152, 2048},
		{"square", 1000, 1000, 100, 100, 100},
		{"already fits", 100, 50, 200, 100, 50},
		{"exactly at bound", 200, 100, 200, 200, 100},
		{"extreme aspect", 4000, 10, 100, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitSize(tt.srcW, tt.srcH, tt.bound)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestFitSizeLargerSideLandsOnBound(t *testing.T) {
	sizes := [][2]int{{3840, 2160}, {640, 480}, {333, 777}, {5000, 5000}}
	const bound = 128
	for _, s := range sizes {
		w, h := fitSize(s[0], s[1], bound)
		bigger := w
		if h > w {
			bigger = h
		}
		assert.Equal(t, bound, bigger, "source %dx%d", s[0], s[1])
		assert.LessOrEqual(t, w, bound)
		assert.LessOrEqual(t, h, bound)
	}
}

func writePNG(t *testing.T, path string, w, h int, fill color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestProduceDownsamplesPreservingAspect(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "frame.png")
	writePNG(t, src, 200, 100, color.NRGBA{R: 200, G: 30, B: 30, A: 255})

	p := New(false)
	thumb, err := p.Produce(src, 50, "")
	require.NoError(t, err)
	assert.Equal(t, 50, thumb.Bounds().Dx())
	assert.Equal(t, 25, thumb.Bounds().Dy())
}

func TestProduceNeverUpscales(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "small.png")
	writePNG(t, src, 30, 20, color.NRGBA{R: 10, G: 200, B: 10, A: 255})

	p := New(false)
	thumb, err := p.Produce(src, 100, "")
	require.NoError(t, err)
	assert.Equal(t, 30, thumb.Bounds().Dx())
	assert.Equal(t, 20, thumb.Bounds().Dy())
}

func TestProduceDrawsAnnotationOverlay(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "frame.png")
	writePNG(t, src, 200, 100, color.NRGBA{R: 200, G: 30, B: 30, A: 255})

	// Full-image box: its outline starts at the thumbnail's top-left.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frame.txt"), []byte("0 0.5 0.5 1.0 1.0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classes.txt"), []byte("person\n"), 0o644))

	p := New(false)
	thumb, err := p.Produce(src, 50, "")
	require.NoError(t, err)

	nrgba, ok := thumb.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, overlay.ColorForLabel("person"), nrgba.NRGBAAt(0, 0))
}

func TestProduceMissingFileFails(t *testing.T) {
	p := New(false)
	thumb, err := p.Produce(filepath.Join(t.TempDir(), "nope.png"), 50, "")
	assert.Error(t, err)
	assert.Nil(t, thumb)
}

func TestProduceCorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(src, []byte("this is not an image"), 0o644))

	p := New(false)
	thumb, err := p.Produce(src, 50, "")
	assert.Error(t, err)
	assert.Nil(t, thumb)
}
