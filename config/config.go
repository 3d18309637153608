package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Rasterizer backends for the export service
const (
	RasterizerNative = "native"
	RasterizerChrome = "chrome"
)

// DefaultCatalogURL is the public template catalog endpoint
const DefaultCatalogURL = "https://api.imgflip.com/get_memes"

// Config holds the application settings read from environment variables
type Config struct {
	Port          string
	BaseURL       string
	CatalogURL    string
	PageSize      int
	PageIncrement int
	CanvasWidth   int
	CanvasHeight  int
	Rasterizer    string
	ChromePath    string
	FontPath      string
	FetchTimeout  time.Duration
	ExportTimeout time.Duration

	// ClearCaptionsOnSelect drops the caption list when a different template is selected
	ClearCaptionsOnSelect bool

	DatabaseURL     string
	CredentialsPath string
	DriveFolderID   string
}

// Load reads the configuration from the environment, applying defaults for unset values
func Load() (*Config, error) {
	cfg := &Config{
		Port:            strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		CatalogURL:      getEnv("CATALOG_URL", DefaultCatalogURL),
		Rasterizer:      strings.ToLower(getEnv("RASTERIZER", RasterizerNative)),
		ChromePath:      os.Getenv("CHROME_PATH"),
		FontPath:        os.Getenv("CAPTION_FONT_PATH"),
		DatabaseURL:     databaseURL(),
		CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID:   os.Getenv("DRIVE_FOLDER_ID"),
	}
	cfg.BaseURL = getEnv("BASE_URL", "http://localhost:"+cfg.Port)

	var err error
	if cfg.PageSize, err = getInt("PAGE_SIZE", 4); err != nil {
		return nil, err
	}
	if cfg.PageIncrement, err = getInt("PAGE_INCREMENT", 4); err != nil {
		return nil, err
	}
	if cfg.CanvasWidth, err = getInt("CANVAS_WIDTH", 300); err != nil {
		return nil, err
	}
	if cfg.CanvasHeight, err = getInt("CANVAS_HEIGHT", 300); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getDuration("FETCH_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.ExportTimeout, err = getDuration("EXPORT_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ClearCaptionsOnSelect, err = getBool("CLEAR_CAPTIONS_ON_SELECT", true); err != nil {
		return nil, err
	}

	if cfg.Rasterizer != RasterizerNative && cfg.Rasterizer != RasterizerChrome {
		return nil, fmt.Errorf("RASTERIZER must be %q or %q, got %q", RasterizerNative, RasterizerChrome, cfg.Rasterizer)
	}
	if cfg.PageSize <= 0 || cfg.PageIncrement <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE and PAGE_INCREMENT must be greater than 0")
	}
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return nil, fmt.Errorf("CANVAS_WIDTH and CANVAS_HEIGHT must be greater than 0")
	}

	return cfg, nil
}

// HistoryEnabled reports whether export history should be written to the database
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

// DriveEnabled reports whether exports should be published to Google Drive
func (c *Config) DriveEnabled() bool {
	return c.CredentialsPath != "" && c.DriveFolderID != ""
}

// databaseURL returns DATABASE_URL or builds a connection string from DB_* variables.
// An empty result means export history is disabled.
func databaseURL() string {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return ""
	}

	port := getEnv("DB_PORT", "5432")
	sslmode := getEnv("DB_SSLMODE", "disable")
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, os.Getenv("DB_PASSWORD"), dbname, sslmode)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
