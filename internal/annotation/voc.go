package annotation

import (
	"encoding/xml"
	"os"

	"github.com/velikanov/thumbgrid/internal/domain"
)

type vocFile struct {
	XMLName  xml.Name `xml:"annotation"`
	Verified string   `xml:"verified,attr"`
	Size     struct {
		Width  int `xml:"width"`
		Height int `xml:"height"`
	} `xml:"size"`
	Objects []struct {
		Name   string `xml:"name"`
		BndBox struct {
			XMin float64 `xml:"xmin"`
			YMin float64 `xml:"ymin"`
			XMax float64 `xml:"xmax"`
			YMax float64 `xml:"ymax"`
		} `xml:"bndbox"`
	} `xml:"object"`
}

// parseVOC reads a Pascal VOC file and converts its absolute pixel boxes to
// normalized centered form using the declared image size. Unlike the YOLO
// dialect, a missing or non-positive declared size invalidates every box in
// the file: without it no geometry can be normalized.
func parseVOC(path string) []domain.AnnotationBox {
	doc, ok := readVOC(path)
	if !ok {
		return nil
	}

	imgW := float64(doc.Size.Width)
	imgH := float64(doc.Size.Height)
	if imgW <= 0 || imgH <= 0 {
		return nil
	}

	boxes := make([]domain.AnnotationBox, 0, len(doc.Objects))
	for _, obj := range doc.Objects {
		b := obj.BndBox
		boxes = append(boxes, domain.AnnotationBox{
			Label:   obj.Name,
			XCenter: (b.XMin + b.XMax) / 2 / imgW,
			YCenter: (b.YMin + b.YMax) / 2 / imgH,
			Width:   (b.XMax - b.XMin) / imgW,
			Height:  (b.YMax - b.YMin) / imgH,
		})
	}
	return boxes
}

// vocVerified reports whether the VOC root element carries verified="yes".
func vocVerified(path string) bool {
	doc, ok := readVOC(path)
	return ok && doc.Verified == "yes"
}

func readVOC(path string) (*vocFile, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var doc vocFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	return &doc, true
}
