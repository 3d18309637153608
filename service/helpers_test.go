package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"meme-generator/models"
)

// fakeCatalogClient returns a fixed template list or error and counts calls
type fakeCatalogClient struct {
	templates []models.Template
	err       error
	calls     int
}

func (f *fakeCatalogClient) Fetch(ctx context.Context) ([]models.Template, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Template, len(f.templates))
	copy(out, f.templates)
	return out, nil
}

// sampleTemplates returns n templates with ids "1".."n"
func sampleTemplates(n int) []models.Template {
	templates := make([]models.Template, n)
	for i := range templates {
		id := fmt.Sprintf("%d", i+1)
		templates[i] = models.Template{
			ID:       id,
			Name:     string(rune('A' + i)),
			ImageURL: "u" + id,
		}
	}
	return templates
}

func newLoadedSession(t *testing.T, n int, clearOnSelect bool) *EditorSession {
	t.Helper()
	session := NewEditorSession(&fakeCatalogClient{templates: sampleTemplates(n)}, SessionOptions{
		PageSize:              4,
		PageIncrement:         4,
		ClearCaptionsOnSelect: clearOnSelect,
	})
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return session
}

// solidPNG encodes a w x h PNG filled with c
func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
