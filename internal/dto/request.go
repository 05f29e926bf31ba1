package dto

import (
	"image"

	"github.com/velikanov/thumbgrid/internal/domain"
)

// ViewportRequest carries a scroll/resize event from the grid client: the
// visible rect in grid pixel coordinates plus the client's grid width.
type ViewportRequest struct {
	X0    int `json:"x0"`
	Y0    int `json:"y0"`
	X1    int `json:"x1" binding:"required"`
	Y1    int `json:"y1" binding:"required"`
	Width int `json:"width" binding:"required"`
}

func (r *ViewportRequest) Rect() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

type IconSizeRequest struct {
	Size int `json:"size" binding:"required"`
}

type AnnotationsDirRequest struct {
	Dir string `json:"dir"`
}

type StatusRequest struct {
	Path   string `json:"path" binding:"required"`
	Status string `json:"status" binding:"required,oneof=no_labels has_labels verified"`
}

func (r *StatusRequest) ToStatus() domain.AnnotationStatus {
	return domain.ParseStatus(r.Status)
}

type StatusBatchRequest struct {
	Statuses []StatusRequest `json:"statuses" binding:"required,dive"`
}

type RefreshRequest struct {
	Path string `json:"path" binding:"required"`
}
