package http

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/velikanov/thumbgrid/internal/domain"
	"github.com/velikanov/thumbgrid/internal/dto"
	"github.com/velikanov/thumbgrid/internal/gallery"
)

// GalleryHandler exposes the gallery loop to a browser grid client. Every
// route delegates to Loop, which marshals the work onto the gallery
// goroutine; handlers never touch cache or scheduler state themselves.
type GalleryHandler struct {
	loop *gallery.Loop
}

func NewGalleryHandler(loop *gallery.Loop) *GalleryHandler {
	return &GalleryHandler{loop: loop}
}

func (h *GalleryHandler) RegisterRoutes(engine *ginext.Engine) {
	engine.GET("/gallery/images", h.ListImages)
	engine.GET("/gallery/thumb", h.GetThumbnail)
	engine.POST("/gallery/viewport", h.UpdateViewport)
	engine.POST("/gallery/refresh", h.RefreshThumbnail)
	engine.PUT("/gallery/icon-size", h.SetIconSize)
	engine.PUT("/gallery/annotations-dir", h.SetAnnotationsDir)
	engine.PUT("/gallery/status", h.SetStatus)
	engine.PUT("/gallery/statuses", h.SetStatuses)
}

// ListImages GET /gallery/images
func (h *GalleryHandler) ListImages(c *ginext.Context) {
	infos, iconSize, err := h.loop.Images()
	if err != nil {
		h.galleryUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapImagesToResponse(infos, iconSize))
}

// GetThumbnail GET /gallery/thumb?path=
//
// Returns the bordered PNG when cached; on a miss production is scheduled
// and 202 tells the client to retry once the pipeline catches up.
func (h *GalleryHandler) GetThumbnail(c *ginext.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: "path query parameter is required",
		})
		return
	}

	icon, err := h.loop.FetchOrSchedule(path)
	switch {
	case errors.Is(err, domain.ErrImageNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: "image is not part of the gallery",
		})
		return
	case err != nil:
		h.galleryUnavailable(c, err)
		return
	case icon == nil:
		c.JSON(http.StatusAccepted, ginext.H{"status": "producing"})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, icon); err != nil {
		zlog.Logger.Error().Err(err).Str("path", path).Msg("failed to encode thumbnail")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "encode_failed",
			Message: "failed to encode thumbnail",
		})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// UpdateViewport POST /gallery/viewport
func (h *GalleryHandler) UpdateViewport(c *ginext.Context) {
	var req dto.ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if err := h.loop.UpdateViewport(req.Rect(), req.Width); err != nil {
		h.galleryUnavailable(c, err)
		return
	}
	c.JSON(http.StatusAccepted, ginext.H{"status": "scheduled"})
}

// SetIconSize PUT /gallery/icon-size
func (h *GalleryHandler) SetIconSize(c *ginext.Context) {
	var req dto.IconSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	err := h.loop.SetIconSize(req.Size)
	switch {
	case errors.Is(err, domain.ErrInvalidIconSize):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_icon_size",
			Message: "icon size out of allowed bounds",
		})
	case err != nil:
		h.galleryUnavailable(c, err)
	default:
		c.JSON(http.StatusOK, ginext.H{"icon_size": req.Size})
	}
}

// SetAnnotationsDir PUT /gallery/annotations-dir
func (h *GalleryHandler) SetAnnotationsDir(c *ginext.Context) {
	var req dto.AnnotationsDirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if err := h.loop.SetAltDir(req.Dir); err != nil {
		h.galleryUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"dir": req.Dir})
}

// SetStatus PUT /gallery/status
func (h *GalleryHandler) SetStatus(c *ginext.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if err := h.loop.SetStatus(req.Path, req.ToStatus()); err != nil {
		h.galleryUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"path": req.Path, "status": req.Status})
}

// SetStatuses PUT /gallery/statuses
func (h *GalleryHandler) SetStatuses(c *ginext.Context) {
	var req dto.StatusBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	statuses := make(map[string]domain.AnnotationStatus, len(req.Statuses))
	for _, s := range req.Statuses {
		statuses[s.Path] = s.ToStatus()
	}
	if err := h.loop.SetStatuses(statuses); err != nil {
		h.galleryUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"updated": len(statuses)})
}

// RefreshThumbnail POST /gallery/refresh
func (h *GalleryHandler) RefreshThumbnail(c *ginext.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if err := h.loop.Refresh(req.Path); err != nil {
		h.galleryUnavailable(c, err)
		return
	}
	c.JSON(http.StatusAccepted, ginext.H{"status": "refreshing"})
}

func (h *GalleryHandler) galleryUnavailable(c *ginext.Context, err error) {
	zlog.Logger.Error().Err(err).Msg("gallery loop unavailable")
	c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
		Error:   "gallery_unavailable",
		Message: "gallery loop is not running",
	})
}
