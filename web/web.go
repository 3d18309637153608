// Package web holds the HTML templates for the editor page and the composition surface.
package web

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Templates contains editor.html, canvas.html and the "surface" fragment
var Templates = template.Must(template.New("").ParseFS(files, "*.html"))
