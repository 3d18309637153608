package service

import (
	"context"

	"meme-generator/models"
)

// CatalogClientInterface defines the contract for fetching the template catalog
type CatalogClientInterface interface {
	Fetch(ctx context.Context) ([]models.Template, error)
}
