package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"meme-generator/models"
	"meme-generator/service"
	"meme-generator/web"
)

// EditorController handles HTTP requests for the template browser, captions and canvas
type EditorController struct {
	session *service.EditorSession
	canvas  *service.Canvas
	fetcher service.ImageFetcherInterface
	timeout time.Duration
}

// NewEditorController creates a new EditorController
func NewEditorController(session *service.EditorSession, canvas *service.Canvas, fetcher service.ImageFetcherInterface, timeout time.Duration) *EditorController {
	return &EditorController{
		session: session,
		canvas:  canvas,
		fetcher: fetcher,
		timeout: timeout,
	}
}

// Index handles GET /
// Serves the editor page
func (c *EditorController) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Templates.ExecuteTemplate(w, "editor.html", nil); err != nil {
		log.Printf("❌ Index: Error rendering editor: %v", err)
		http.Error(w, "Failed to render editor", http.StatusInternalServerError)
	}
}

// GetSession handles GET /api/session
// Returns the catalog view, the selected template and the captions
func (c *EditorController) GetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, c.session.Snapshot())
}

// RetryCatalog handles POST /api/catalog/retry
// Refetches the catalog after a failed load
func (c *EditorController) RetryCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	if err := c.session.Retry(ctx); err != nil {
		log.Printf("❌ RetryCatalog: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.session.Snapshot().Catalog)
}

// ListTemplates handles GET /api/templates?q=drake
// Without q returns the visible prefix, with q a fuzzy search over the whole catalog
func (c *EditorController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, c.session.Search(query))
}

// LoadMore handles POST /api/templates/more
func (c *EditorController) LoadMore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, c.session.LoadMore())
}

// SelectTemplate handles POST /api/templates/select
// Example body: {"id": "181913649"}
func (c *EditorController) SelectTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SelectTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	if _, err := c.session.Select(req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.session.Snapshot())
}

// GetThumbnail handles GET /api/templates/:id/thumbnail
// Returns a JPEG preview of the template image
func (c *EditorController) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/templates/"), "/thumbnail")
	tmpl, err := c.session.Template(id)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	data, err := c.fetcher.Fetch(ctx, tmpl.ImageURL)
	if err != nil {
		log.Printf("⚠️  GetThumbnail: failed to fetch %s: %v", tmpl.ImageURL, err)
		http.Error(w, fmt.Sprintf("Failed to fetch template image: %v", err), http.StatusBadGateway)
		return
	}
	thumb, err := service.Thumbnail(data)
	if err != nil {
		log.Printf("⚠️  GetThumbnail: failed to build thumbnail for %s: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to build thumbnail: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(thumb)
}

// AddCaption handles POST /api/captions
// Appends an empty caption at the default position
func (c *EditorController) AddCaption(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	caption, err := c.session.AddCaption()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, caption)
}

// UpdateCaption handles PUT /api/captions/:id/text and PUT /api/captions/:id/position
func (c *EditorController) UpdateCaption(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path format: /api/captions/{id}/{field}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/captions/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	id, field := parts[0], parts[1]

	var err error
	switch field {
	case "text":
		var req models.UpdateCaptionTextRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", decodeErr), http.StatusBadRequest)
			return
		}
		err = c.session.SetCaptionText(id, req.Text)
	case "position":
		var req models.UpdateCaptionPositionRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", decodeErr), http.StatusBadRequest)
			return
		}
		if req.X == nil || req.Y == nil {
			http.Error(w, "x and y are required", http.StatusBadRequest)
			return
		}
		err = c.session.SetCaptionPosition(id, models.Position{X: *req.X, Y: *req.Y})
	default:
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c.session.Snapshot().Captions)
}

// RenderCanvas handles GET /canvas?fragment=1
// Renders the composition surface, or 404 when no template is selected
func (c *EditorController) RenderCanvas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	comp, err := c.canvas.Compose(c.session.Snapshot())
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	fragment := r.URL.Query().Get("fragment") != ""
	htmlContent, err := c.canvas.RenderHTML(comp, fragment)
	if err != nil {
		log.Printf("❌ RenderCanvas: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render canvas: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(htmlContent))
}
