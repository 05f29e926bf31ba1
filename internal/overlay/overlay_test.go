package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/thumbgrid/internal/domain"
)

func TestColorForLabelIsDeterministic(t *testing.T) {
	first := ColorForLabel("person")
	second := ColorForLabel("person")
	assert.Equal(t, first, second)
}

func TestColorForLabelDistinctLabelsDiffer(t *testing.T) {
	a := ColorForLabel("person")
	b := ColorForLabel("bicycle")
	assert.NotEqual(t, a, b)
}

func TestColorForLabelChannelFloor(t *testing.T) {
	labels := []string{"person", "car", "dog", "cat", "tree", "sign", "bus", "bike"}
	for _, label := range labels {
		c := ColorForLabel(label)
		assert.GreaterOrEqual(t, c.R, uint8(channelFloor), "label %q red", label)
		assert.GreaterOrEqual(t, c.G, uint8(channelFloor), "label %q green", label)
		assert.GreaterOrEqual(t, c.B, uint8(channelFloor), "label %q blue", label)
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestBoxCornersRoundTrip(t *testing.T) {
	orig := domain.AnnotationBox{XCenter: 0.37, YCenter: 0.62, Width: 0.21, Height: 0.11}
	const imgW, imgH = 640, 480

	x1, y1, x2, y2 := boxCorners(orig, imgW, imgH)
	back := normalizedFromCorners(x1, y1, x2, y2, imgW, imgH)

	assert.InDelta(t, orig.XCenter, back.XCenter, 1e-9)
	assert.InDelta(t, orig.YCenter, back.YCenter, 1e-9)
	assert.InDelta(t, orig.Width, back.Width, 1e-9)
	assert.InDelta(t, orig.Height, back.Height, 1e-9)
}

func TestDrawBoxesOutline(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	box := domain.AnnotationBox{Label: "person", XCenter: 0.5, YCenter: 0.5, Width: 0.5, Height: 0.5}

	DrawBoxes(img, []domain.AnnotationBox{box}, false)

	want := ColorForLabel("person")
	// Corners land at (10,10)-(30,30); outline is 2px growing inward.
	assert.Equal(t, want, img.NRGBAAt(10, 10))
	assert.Equal(t, want, img.NRGBAAt(11, 11))
	assert.Equal(t, want, img.NRGBAAt(30, 10))
	assert.Equal(t, want, img.NRGBAAt(10, 30))
	// Interior stays untouched.
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(20, 20))
}

func TestDrawBoxesEmptyListIsNoOp(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	before := append([]uint8(nil), img.Pix...)

	DrawBoxes(img, nil, false)
	assert.Equal(t, before, img.Pix)
}

func TestDrawBoxesClipsOutOfRangeGeometry(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	// Box spilling past every edge.
	box := domain.AnnotationBox{Label: "big", XCenter: 0.5, YCenter: 0.5, Width: 1.5, Height: 1.5}

	require.NotPanics(t, func() {
		DrawBoxes(img, []domain.AnnotationBox{box}, false)
	})
}

func TestApplyBorderDimensionsAndColor(t *testing.T) {
	thumb := image.NewNRGBA(image.Rect(0, 0, 60, 40))
	const iconSize, borderWidth = 100, 4

	bordered := ApplyBorder(thumb, domain.StatusVerified, iconSize, borderWidth)

	side := iconSize + borderWidth*2
	assert.Equal(t, side, bordered.Bounds().Dx())
	assert.Equal(t, side, bordered.Bounds().Dy())

	green := StatusColor(domain.StatusVerified)
	assert.Equal(t, green, bordered.NRGBAAt(0, 0))
	assert.Equal(t, green, bordered.NRGBAAt(side-1, side-1))
}

func TestApplyBorderCentersThumbnail(t *testing.T) {
	thumb := image.NewNRGBA(image.Rect(0, 0, 60, 40))
	red := color.NRGBA{R: 255, A: 255}
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			thumb.SetNRGBA(x, y, red)
		}
	}

	bordered := ApplyBorder(thumb, domain.StatusNoLabels, 100, 4)

	// 60x40 inside a 100px icon area: offsets (4+20, 4+30).
	assert.Equal(t, red, bordered.NRGBAAt(24, 34))
	assert.Equal(t, red, bordered.NRGBAAt(24+59, 34+39))
	gray := StatusColor(domain.StatusNoLabels)
	assert.Equal(t, gray, bordered.NRGBAAt(23, 34))
}

func TestStatusColors(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 150, G: 150, B: 150, A: 255}, StatusColor(domain.StatusNoLabels))
	assert.Equal(t, color.NRGBA{R: 66, G: 133, B: 244, A: 255}, StatusColor(domain.StatusHasLabels))
	assert.Equal(t, color.NRGBA{R: 52, G: 168, B: 83, A: 255}, StatusColor(domain.StatusVerified))
}
