package dto

import "github.com/velikanov/thumbgrid/internal/gallery"

type ImageResponse struct {
	Path     string `json:"path"`
	Status   string `json:"status"`
	ThumbURL string `json:"thumb_url"`
}

type ImageListResponse struct {
	Images   []*ImageResponse `json:"images"`
	Total    int              `json:"total"`
	IconSize int              `json:"icon_size"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func MapImagesToResponse(infos []gallery.ImageInfo, iconSize int) *ImageListResponse {
	images := make([]*ImageResponse, 0, len(infos))
	for _, info := range infos {
		images = append(images, &ImageResponse{
			Path:     info.Path,
			Status:   info.Status.String(),
			ThumbURL: "/gallery/thumb?path=" + info.Path,
		})
	}
	return &ImageListResponse{
		Images:   images,
		Total:    len(images),
		IconSize: iconSize,
	}
}
