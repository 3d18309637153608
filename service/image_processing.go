package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

const (
	// Thumbnail settings for the template browser
	qualityThumb = 75
	maxSizeThumb = 300
	// maxImageBytes bounds a downloaded template image
	maxImageBytes = 20 << 20
)

// ImageFetcherInterface defines the contract for loading template images
type ImageFetcherInterface interface {
	Fetch(ctx context.Context, imageURL string) ([]byte, error)
}

// HTTPImageFetcher loads template images over HTTP
// Implements ImageFetcherInterface
type HTTPImageFetcher struct {
	httpClient *http.Client
}

// NewHTTPImageFetcher creates a new HTTPImageFetcher
func NewHTTPImageFetcher(timeout time.Duration) *HTTPImageFetcher {
	return &HTTPImageFetcher{httpClient: &http.Client{Timeout: timeout}}
}

// Ensure HTTPImageFetcher implements ImageFetcherInterface
var _ ImageFetcherInterface = (*HTTPImageFetcher)(nil)

// Fetch downloads an image and returns its raw bytes
func (f *HTTPImageFetcher) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return imageData, nil
}

// DecodeImage decodes PNG, JPEG, GIF, BMP or TIFF bytes, applying EXIF orientation
func DecodeImage(imageData []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// FitToSurface scales and centre-crops an image so it covers a width x height surface
func FitToSurface(img image.Image, width, height int) *image.NRGBA {
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
}

// Thumbnail produces a JPEG preview bounded to maxSizeThumb on its longest side
func Thumbnail(imageData []byte) ([]byte, error) {
	img, err := DecodeImage(imageData)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	var resizedImg image.Image = img
	if bounds.Dx() > maxSizeThumb || bounds.Dy() > maxSizeThumb {
		resizedImg = imaging.Fit(img, maxSizeThumb, maxSizeThumb, imaging.Lanczos)
		log.Printf("🔄 Thumbnail resized: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), resizedImg.Bounds().Dx(), resizedImg.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: qualityThumb}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
