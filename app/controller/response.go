package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"meme-generator/service"
)

// writeJSON encodes v as the JSON response body with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

// statusForError maps service errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrCaptionNotFound), errors.Is(err, service.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoActiveSurface), errors.Is(err, service.ErrRetryNotAllowed),
		errors.Is(err, service.ErrCatalogAlreadyLoaded):
		return http.StatusConflict
	case errors.Is(err, service.ErrCatalogUnavailable), errors.Is(err, service.ErrTemplateImageUnavailable),
		errors.Is(err, service.ErrRasterizationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a plain-text error response
func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusForError(err))
}
