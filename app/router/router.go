package router

import (
	"net/http"
	"strings"

	"meme-generator/app/controller"
)

type Controllers struct {
	Editor *controller.EditorController
	Export *controller.ExportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Editor page
	mux.HandleFunc("/", controllers.Editor.Index)

	// Session state and catalog
	mux.HandleFunc("/api/session", controllers.Editor.GetSession)
	mux.HandleFunc("/api/catalog/retry", controllers.Editor.RetryCatalog)

	// Template browser
	mux.HandleFunc("/api/templates", controllers.Editor.ListTemplates)
	mux.HandleFunc("/api/templates/more", controllers.Editor.LoadMore)
	mux.HandleFunc("/api/templates/select", controllers.Editor.SelectTemplate)
	mux.HandleFunc("/api/templates/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/thumbnail") {
			controllers.Editor.GetThumbnail(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Captions
	mux.HandleFunc("/api/captions", controllers.Editor.AddCaption)
	mux.HandleFunc("/api/captions/", controllers.Editor.UpdateCaption)

	// Composition surface and export
	mux.HandleFunc("/canvas", controllers.Editor.RenderCanvas)
	mux.HandleFunc("/download", controllers.Export.Download)
	mux.HandleFunc("/api/exports", controllers.Export.ListExports)
}
