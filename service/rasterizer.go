package service

import (
	"context"
	"errors"

	"meme-generator/models"
)

var (
	// ErrRasterizationFailed is returned when the surface could not be turned into an image
	ErrRasterizationFailed = errors.New("export failed")
	// ErrTemplateImageUnavailable is returned when the template image cannot be loaded for rasterization
	ErrTemplateImageUnavailable = errors.New("template image unavailable")
)

// Rasterizer turns a composition into PNG bytes
type Rasterizer interface {
	Rasterize(ctx context.Context, comp models.Composition) ([]byte, error)
	Name() string
}
