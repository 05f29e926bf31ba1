package domain

import "image"

// AnnotationStatus reflects the review state of one image.
type AnnotationStatus int

const (
	StatusNoLabels AnnotationStatus = iota
	StatusHasLabels
	StatusVerified
)

func (s AnnotationStatus) String() string {
	switch s {
	case StatusHasLabels:
		return "has_labels"
	case StatusVerified:
		return "verified"
	default:
		return "no_labels"
	}
}

// ParseStatus maps the wire representation back to a status.
// Unknown values fall back to StatusNoLabels.
func ParseStatus(s string) AnnotationStatus {
	switch s {
	case "has_labels":
		return StatusHasLabels
	case "verified":
		return StatusVerified
	default:
		return StatusNoLabels
	}
}

// AnnotationBox is a labeled bounding box in normalized centered form:
// center and size are fractions of the source image's native dimensions.
type AnnotationBox struct {
	Label   string
	XCenter float64
	YCenter float64
	Width   float64
	Height  float64
}

// AnnotationFormat identifies one of the two supported on-disk dialects.
type AnnotationFormat string

const (
	FormatYOLO AnnotationFormat = "yolo"
	FormatVOC  AnnotationFormat = "voc"
)

// Cell is one grid slot: an image path plus its layout bounds in the
// grid's pixel coordinate space.
type Cell struct {
	Path   string
	Bounds image.Rectangle
}
