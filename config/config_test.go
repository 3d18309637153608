package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "BASE_URL", "CATALOG_URL", "PAGE_SIZE", "PAGE_INCREMENT",
		"CANVAS_WIDTH", "CANVAS_HEIGHT", "RASTERIZER", "CHROME_PATH", "CAPTION_FONT_PATH",
		"FETCH_TIMEOUT", "EXPORT_TIMEOUT", "CLEAR_CAPTIONS_ON_SELECT",
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"GOOGLE_APPLICATION_CREDENTIALS", "DRIVE_FOLDER_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.CatalogURL != DefaultCatalogURL {
		t.Errorf("CatalogURL = %q", cfg.CatalogURL)
	}
	if cfg.PageSize != 4 || cfg.PageIncrement != 4 {
		t.Errorf("paging = %d/%d, want 4/4", cfg.PageSize, cfg.PageIncrement)
	}
	if cfg.CanvasWidth != 300 || cfg.CanvasHeight != 300 {
		t.Errorf("canvas = %dx%d, want 300x300", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.Rasterizer != RasterizerNative {
		t.Errorf("Rasterizer = %q", cfg.Rasterizer)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("FetchTimeout = %s", cfg.FetchTimeout)
	}
	if !cfg.ClearCaptionsOnSelect {
		t.Error("expected ClearCaptionsOnSelect to default to true")
	}
	if cfg.HistoryEnabled() || cfg.DriveEnabled() {
		t.Error("expected history and drive to be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9000")
	t.Setenv("PAGE_SIZE", "8")
	t.Setenv("RASTERIZER", "Chrome")
	t.Setenv("CLEAR_CAPTIONS_ON_SELECT", "false")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "memes")
	t.Setenv("DB_NAME", "memes")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")
	t.Setenv("DRIVE_FOLDER_ID", "folder")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.PageSize != 8 {
		t.Errorf("PageSize = %d, want 8", cfg.PageSize)
	}
	if cfg.Rasterizer != RasterizerChrome {
		t.Errorf("Rasterizer = %q", cfg.Rasterizer)
	}
	if cfg.ClearCaptionsOnSelect {
		t.Error("expected ClearCaptionsOnSelect to be false")
	}
	if !strings.Contains(cfg.DatabaseURL, "host=localhost port=5432 user=memes") {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if !cfg.HistoryEnabled() || !cfg.DriveEnabled() {
		t.Error("expected history and drive to be enabled")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PAGE_SIZE":                "four",
		"FETCH_TIMEOUT":            "soon",
		"CLEAR_CAPTIONS_ON_SELECT": "maybe",
		"RASTERIZER":               "canvas",
		"CANVAS_WIDTH":             "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
