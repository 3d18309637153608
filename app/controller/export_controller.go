package controller

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"meme-generator/service"
)

// ExportController handles HTTP requests for meme downloads and export history
type ExportController struct {
	exportService *service.ExportService
}

// NewExportController creates a new ExportController
func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// Download handles GET /download
// Responds with meme.png as an attachment, 204 when no template is selected,
// or an error status when rasterization fails
func (c *ExportController) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := c.exportService.Download(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PNG)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.PNG); err != nil {
		log.Printf("❌ Download: failed to write response: %v", err)
	}
}

// ListExports handles GET /api/exports?limit=20
func (c *ExportController) ListExports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := c.exportService.History(r.Context(), limit)
	if err != nil {
		log.Printf("❌ ListExports: %v", err)
		http.Error(w, fmt.Sprintf("Failed to list exports: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
