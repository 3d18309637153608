package service

import (
	"bytes"
	"errors"
	"fmt"

	"meme-generator/models"
	"meme-generator/web"
)

// ErrNoActiveSurface is returned when there is no selected template to compose
var ErrNoActiveSurface = errors.New("no template selected")

// Canvas composes the selected template and its captions into a fixed-size surface
type Canvas struct {
	width  int
	height int
}

// NewCanvas creates a Canvas with the given surface size in pixels
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

// Width returns the surface width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns the surface height in pixels
func (c *Canvas) Height() int { return c.height }

// Compose builds the composition for the current session state.
// Captions keep insertion order, so later captions are drawn above earlier ones.
func (c *Canvas) Compose(snapshot models.SessionSnapshot) (models.Composition, error) {
	if snapshot.Selected == nil {
		return models.Composition{}, ErrNoActiveSurface
	}
	captions := make([]models.Caption, len(snapshot.Captions))
	copy(captions, snapshot.Captions)
	return models.Composition{
		Template: *snapshot.Selected,
		Captions: captions,
		Width:    c.width,
		Height:   c.height,
	}, nil
}

// RenderHTML renders the composition surface. With fragment set only the surface
// element is returned, otherwise a standalone document suitable for rasterization.
func (c *Canvas) RenderHTML(comp models.Composition, fragment bool) (string, error) {
	name := "canvas.html"
	if fragment {
		name = "surface"
	}

	var buf bytes.Buffer
	if err := web.Templates.ExecuteTemplate(&buf, name, comp); err != nil {
		return "", fmt.Errorf("failed to execute canvas template: %w", err)
	}
	return buf.String(), nil
}
