package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"meme-generator/app/controller"
	"meme-generator/app/router"
	"meme-generator/config"
	"meme-generator/db"
	"meme-generator/repository"
	"meme-generator/service"
)

// App holds the wired services and the HTTP handler
type App struct {
	Config  *config.Config
	Session *service.EditorSession
	Canvas  *service.Canvas
	Export  *service.ExportService
	Handler http.Handler

	closers []func() error
}

// Initialize wires the catalog client, editing session, export pipeline and routes
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	catalogClient := service.NewCatalogClient(cfg.CatalogURL, cfg.FetchTimeout)
	return InitializeWithClient(ctx, cfg, catalogClient)
}

// InitializeWithClient is Initialize with an explicit catalog client
func InitializeWithClient(ctx context.Context, cfg *config.Config, catalogClient service.CatalogClientInterface) (*App, error) {
	a := &App{Config: cfg}

	a.Session = service.NewEditorSession(catalogClient, service.SessionOptions{
		PageSize:              cfg.PageSize,
		PageIncrement:         cfg.PageIncrement,
		ClearCaptionsOnSelect: cfg.ClearCaptionsOnSelect,
	})
	a.Canvas = service.NewCanvas(cfg.CanvasWidth, cfg.CanvasHeight)
	fetcher := service.NewHTTPImageFetcher(cfg.FetchTimeout)

	rasterizer, err := NewRasterizer(cfg, a.Canvas, fetcher)
	if err != nil {
		return nil, err
	}
	if closer, ok := rasterizer.(interface{ Close() error }); ok {
		a.closers = append(a.closers, closer.Close)
	}
	a.Export = service.NewExportService(a.Session, a.Canvas, rasterizer, cfg.ExportTimeout)

	// Export history is optional
	if cfg.HistoryEnabled() {
		if err := db.InitDB(ctx, cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, db.CloseDB)
		a.Export.SetHistory(repository.NewExportRepository())
	} else {
		log.Printf("ℹ️  Export history disabled (no database configured)")
	}

	// Drive publishing is optional
	if cfg.DriveEnabled() {
		driveService, err := service.NewDriveService(ctx, cfg.CredentialsPath, cfg.DriveFolderID)
		if err != nil {
			return nil, err
		}
		a.Export.SetPublisher(driveService)
	}

	controllers := &router.Controllers{
		Editor: controller.NewEditorController(a.Session, a.Canvas, fetcher, cfg.FetchTimeout),
		Export: controller.NewExportController(a.Export),
	}
	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	a.Handler = mux

	return a, nil
}

// NewRasterizer builds the rasterizer selected by the configuration
func NewRasterizer(cfg *config.Config, canvas *service.Canvas, fetcher service.ImageFetcherInterface) (service.Rasterizer, error) {
	switch cfg.Rasterizer {
	case config.RasterizerChrome:
		return service.NewChromeRasterizer(canvas, cfg.ChromePath, cfg.ExportTimeout), nil
	default:
		return service.NewNativeRasterizer(fetcher, cfg.FontPath)
	}
}

// LoadCatalog performs the one catalog fetch of the session in the background
func (a *App) LoadCatalog(ctx context.Context) {
	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, a.Config.FetchTimeout)
		defer cancel()
		if err := a.Session.Load(fetchCtx); err != nil {
			log.Printf("⚠️  Catalog not loaded: %v", err)
		}
	}()
}

// Close releases the database connection and rasterizer resources
func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Printf("⚠️  Warning: close failed: %v", err)
		}
	}
}
