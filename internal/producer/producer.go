// Package producer renders one thumbnail: decode, downsample, annotate.
package producer

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"

	// Extra decoders beyond imaging's built-ins; datasets routinely mix
	// camera formats.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/velikanov/thumbgrid/internal/annotation"
	"github.com/velikanov/thumbgrid/internal/overlay"
)

// Producer turns a source image path into an annotated thumbnail raster.
// It is stateless apart from rendering options and safe for concurrent use
// from multiple pool workers.
type Producer struct {
	drawLabels bool
}

func New(drawLabels bool) *Producer {
	return &Producer{drawLabels: drawLabels}
}

// Produce decodes the source image, downsamples it into a targetSize-bounded
// square preserving aspect ratio (never upscaling), and composites any
// on-disk annotations onto the decoded copy. The returned raster is owned by
// the caller; nothing here retains it.
//
// All work in here may block on file I/O and decode; it runs only on pool
// workers, never on the gallery loop.
func (p *Producer) Produce(path string, targetSize int, altDir string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("decode image %s: empty raster", path)
	}

	// Fit only scales down; sources already within the bound keep their
	// native dimensions. The result is a fresh NRGBA, so the overlay pass
	// below mutates a private copy, never shared pixels.
	thumb := imaging.Fit(img, targetSize, targetSize, imaging.Lanczos)

	boxes := annotation.Load(path, altDir)
	overlay.DrawBoxes(thumb, boxes, p.drawLabels)

	zlog.Logger.Debug().
		Str("path", path).
		Int("src_width", srcW).
		Int("src_height", srcH).
		Int("thumb_width", thumb.Bounds().Dx()).
		Int("thumb_height", thumb.Bounds().Dy()).
		Int("boxes", len(boxes)).
		Msg("thumbnail produced")

	return thumb, nil
}

// fitSize computes the downscale target for a srcW x srcH source under a
// square bound: the larger side lands exactly on the bound, the other keeps
// the aspect ratio, and sources already within the bound are untouched.
func fitSize(srcW, srcH, bound int) (int, int) {
	if srcW <= bound && srcH <= bound {
		return srcW, srcH
	}
	if srcW >= srcH {
		h := (srcH*bound + srcW/2) / srcW
		if h < 1 {
			h = 1
		}
		return bound, h
	}
	w := (srcW*bound + srcH/2) / srcH
	if w < 1 {
		w = 1
	}
	return w, bound
}
