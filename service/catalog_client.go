package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"meme-generator/models"
)

// ErrCatalogUnavailable is returned when the catalog cannot be fetched or understood
var ErrCatalogUnavailable = errors.New("template catalog unavailable")

// maxCatalogBytes bounds the catalog response body
const maxCatalogBytes = 8 << 20

// CatalogClient fetches meme templates from the public catalog endpoint
// Implements CatalogClientInterface
type CatalogClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewCatalogClient creates a new CatalogClient for the given endpoint
func NewCatalogClient(endpoint string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure CatalogClient implements CatalogClientInterface
var _ CatalogClientInterface = (*CatalogClient)(nil)

// Fetch performs one GET against the catalog endpoint and returns the templates in response order.
// Entries without an id or image URL are skipped, and duplicate ids keep the first occurrence.
func (c *CatalogClient) Fetch(ctx context.Context) ([]models.Template, error) {
	log.Printf("📥 Fetching template catalog from %s", c.endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: catalog endpoint returned status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var payload models.CatalogResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCatalogBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: malformed catalog payload: %v", ErrCatalogUnavailable, err)
	}
	if payload.Success != nil && !*payload.Success {
		msg := payload.ErrorMessage
		if msg == "" {
			msg = "success=false"
		}
		return nil, fmt.Errorf("%w: %s", ErrCatalogUnavailable, msg)
	}
	if payload.Data == nil || payload.Data.Memes == nil {
		return nil, fmt.Errorf("%w: malformed catalog payload: missing data.memes", ErrCatalogUnavailable)
	}
	memes := *payload.Data.Memes

	templates := make([]models.Template, 0, len(memes))
	seen := make(map[string]bool, len(memes))
	for _, entry := range memes {
		if entry.ID == "" || entry.URL == "" {
			log.Printf("⚠️  Skipping catalog entry with missing id or url: %q", entry.Name)
			continue
		}
		if seen[entry.ID] {
			log.Printf("⚠️  Skipping duplicate catalog entry: %s", entry.ID)
			continue
		}
		seen[entry.ID] = true
		templates = append(templates, entry.ToTemplate())
	}

	log.Printf("✓ Catalog fetched: %d templates", len(templates))
	return templates, nil
}
