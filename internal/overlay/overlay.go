// Package overlay draws annotation boxes and status borders onto thumbnails.
package overlay

import (
	"crypto/md5"
	"encoding/binary"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/velikanov/thumbgrid/internal/domain"
)

const (
	boxOutlinePx = 2

	// channelFloor keeps label colors legible against both light and
	// dark thumbnail content.
	channelFloor = 100
)

// ColorForLabel derives a stable color from the label text: the first four
// bytes of its md5 digest map to RGB, with every channel floored so the
// outline never disappears into dark imagery. Same label, same color, in
// every render and every session.
func ColorForLabel(label string) color.NRGBA {
	sum := md5.Sum([]byte(label))
	hash := binary.BigEndian.Uint32(sum[:4])

	r := uint8((hash & 0xFF0000) >> 16)
	g := uint8((hash & 0x00FF00) >> 8)
	b := uint8(hash & 0x0000FF)

	return color.NRGBA{R: maxChannel(r), G: maxChannel(g), B: maxChannel(b), A: 255}
}

func maxChannel(c uint8) uint8 {
	if c < channelFloor {
		return channelFloor
	}
	return c
}

// boxCorners converts a normalized centered box to pixel corner coordinates
// at the thumbnail's post-scale dimensions.
func boxCorners(b domain.AnnotationBox, imgW, imgH int) (x1, y1, x2, y2 float64) {
	w := float64(imgW)
	h := float64(imgH)
	x1 = (b.XCenter - b.Width/2) * w
	y1 = (b.YCenter - b.Height/2) * h
	x2 = (b.XCenter + b.Width/2) * w
	y2 = (b.YCenter + b.Height/2) * h
	return
}

// normalizedFromCorners is the inverse of boxCorners.
func normalizedFromCorners(x1, y1, x2, y2 float64, imgW, imgH int) domain.AnnotationBox {
	w := float64(imgW)
	h := float64(imgH)
	return domain.AnnotationBox{
		XCenter: (x1 + x2) / 2 / w,
		YCenter: (y1 + y2) / 2 / h,
		Width:   (x2 - x1) / w,
		Height:  (y2 - y1) / h,
	}
}

// DrawBoxes composites 2px outline rectangles for every box onto img, which
// must be the producer's private decode-time copy, never a cached value.
// An empty box list is a no-op. When withLabels is set, the label text is
// drawn just inside the top-left corner of its box.
func DrawBoxes(img *image.NRGBA, boxes []domain.AnnotationBox, withLabels bool) {
	if len(boxes) == 0 {
		return
	}

	imgW := img.Bounds().Dx()
	imgH := img.Bounds().Dy()

	for _, b := range boxes {
		fx1, fy1, fx2, fy2 := boxCorners(b, imgW, imgH)
		x1, y1, x2, y2 := int(fx1), int(fy1), int(fx2), int(fy2)

		c := ColorForLabel(b.Label)
		drawOutline(img, x1, y1, x2, y2, c)
		if withLabels {
			drawLabel(img, b.Label, x1+boxOutlinePx+1, y1+boxOutlinePx+1, c)
		}
	}
}

// drawOutline draws an unfilled rectangle of boxOutlinePx thickness growing
// inward from the given corners. Coordinates may extend past the image;
// setPx clips.
func drawOutline(img *image.NRGBA, x1, y1, x2, y2 int, c color.NRGBA) {
	for t := 0; t < boxOutlinePx; t++ {
		for x := x1; x <= x2; x++ {
			setPx(img, x, y1+t, c)
			setPx(img, x, y2-t, c)
		}
		for y := y1; y <= y2; y++ {
			setPx(img, x1+t, y, c)
			setPx(img, x2-t, y, c)
		}
	}
}

func setPx(img *image.NRGBA, x, y int, c color.NRGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

// drawLabel renders the label text with the fixed 7x13 face. The baseline
// sits one face height below the anchor so the text lands inside the box.
func drawLabel(img *image.NRGBA, label string, x, y int, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(y + basicfont.Face7x13.Ascent),
		},
	}
	d.DrawString(label)
}
