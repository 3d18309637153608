package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"

	"meme-generator/models"
)

// Caption typography: bold 20px on a 28px line, black
const (
	captionFontSize   = 20
	captionLineHeight = 28
)

// NativeRasterizer draws the composition in-process with gg, without a browser
// Implements Rasterizer
type NativeRasterizer struct {
	fetcher ImageFetcherInterface
	source  *text.FontSource
	face    text.Face
}

// NewNativeRasterizer creates a NativeRasterizer. An empty fontPath uses the embedded Go Bold font.
func NewNativeRasterizer(fetcher ImageFetcherInterface, fontPath string) (*NativeRasterizer, error) {
	var source *text.FontSource
	var err error
	if fontPath != "" {
		source, err = text.NewFontSourceFromFile(fontPath)
	} else {
		source, err = text.NewFontSource(gobold.TTF)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load caption font: %w", err)
	}

	return &NativeRasterizer{
		fetcher: fetcher,
		source:  source,
		face:    source.Face(captionFontSize),
	}, nil
}

// Ensure NativeRasterizer implements Rasterizer
var _ Rasterizer = (*NativeRasterizer)(nil)

// Name returns the rasterizer identifier
func (r *NativeRasterizer) Name() string { return "native" }

// Close releases the font source
func (r *NativeRasterizer) Close() error {
	return r.source.Close()
}

// Rasterize fetches the template image, fills the surface with it and draws every caption
// at its position, top-left anchored, in insertion order
func (r *NativeRasterizer) Rasterize(ctx context.Context, comp models.Composition) ([]byte, error) {
	data, err := r.fetcher.Fetch(ctx, comp.Template.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateImageUnavailable, err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateImageUnavailable, err)
	}

	surface := FitToSurface(img, comp.Width, comp.Height)
	dc := gg.NewContextForImage(surface)
	defer dc.Close()

	dc.SetFont(r.face)
	dc.SetRGB(0, 0, 0)
	for _, c := range comp.Captions {
		for i, line := range strings.Split(c.Text, "\n") {
			if line == "" {
				continue
			}
			baseline := c.Position.Y + float64(i*captionLineHeight) + captionBaseline()
			dc.DrawString(line, c.Position.X, baseline)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: failed to encode PNG: %v", ErrRasterizationFailed, err)
	}

	log.Printf("✓ Surface rasterized natively: %dx%d, %d captions, %d bytes", comp.Width, comp.Height, len(comp.Captions), buf.Len())
	return buf.Bytes(), nil
}

// captionBaseline is the distance from the top of a line box to the text baseline
func captionBaseline() float64 {
	return float64(captionLineHeight-captionFontSize)/2 + captionFontSize*0.8
}
