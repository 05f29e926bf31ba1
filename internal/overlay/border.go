package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/velikanov/thumbgrid/internal/domain"
)

// Status border colors match the review workflow: gray for untouched
// images, blue once labels exist, green once a reviewer verified them.
var statusColors = map[domain.AnnotationStatus]color.NRGBA{
	domain.StatusNoLabels:  {R: 150, G: 150, B: 150, A: 255},
	domain.StatusHasLabels: {R: 66, G: 133, B: 244, A: 255},
	domain.StatusVerified:  {R: 52, G: 168, B: 83, A: 255},
}

// StatusColor returns the border color for a status.
func StatusColor(status domain.AnnotationStatus) color.NRGBA {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[domain.StatusNoLabels]
}

// ApplyBorder composites a cached thumbnail onto a status-colored square of
// iconSize plus the border on every side, centering the thumbnail. This is
// the cheap recomposite step: it never touches the cached pixels, so a
// status change needs no re-decode.
func ApplyBorder(thumb image.Image, status domain.AnnotationStatus, iconSize, borderWidth int) *image.NRGBA {
	side := iconSize + borderWidth*2
	bordered := image.NewNRGBA(image.Rect(0, 0, side, side))
	draw.Draw(bordered, bordered.Bounds(), image.NewUniform(StatusColor(status)), image.Point{}, draw.Src)

	tb := thumb.Bounds()
	x := borderWidth + (iconSize-tb.Dx())/2
	y := borderWidth + (iconSize-tb.Dy())/2
	target := image.Rect(x, y, x+tb.Dx(), y+tb.Dy())
	draw.Draw(bordered, target, thumb, tb.Min, draw.Over)

	return bordered
}
