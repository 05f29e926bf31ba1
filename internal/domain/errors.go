package domain

import "errors"

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrInvalidFormat    = errors.New("invalid or unsupported image format")
	ErrInvalidImageData = errors.New("invalid image data")
	ErrUnknownPath      = errors.New("path is not part of the gallery")
	ErrInvalidIconSize  = errors.New("icon size out of allowed bounds")
	ErrGalleryStopped   = errors.New("gallery loop is not running")
)
