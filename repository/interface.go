package repository

import (
	"context"

	"meme-generator/models"
)

// ExportRepositoryInterface defines the contract for export history operations
type ExportRepositoryInterface interface {
	Insert(ctx context.Context, record *models.ExportRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.ExportRecord, error)
}
