package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"meme-generator/db"
	"meme-generator/models"
)

// ExportRepository handles database operations for the export history
// Implements ExportRepositoryInterface
type ExportRepository struct {
	db *sql.DB
}

// NewExportRepository creates a new ExportRepository on the shared connection
func NewExportRepository() *ExportRepository {
	return &ExportRepository{db: db.DB}
}

// NewExportRepositoryWithDB creates a new ExportRepository on the given connection
func NewExportRepositoryWithDB(conn *sql.DB) *ExportRepository {
	return &ExportRepository{db: conn}
}

// Ensure ExportRepository implements ExportRepositoryInterface
var _ ExportRepositoryInterface = (*ExportRepository)(nil)

// Insert stores an export record and fills in its id and creation time
func (r *ExportRepository) Insert(ctx context.Context, record *models.ExportRecord) error {
	query := `
		INSERT INTO meme_exports (template_id, template_name, caption_count, filename, byte_size, rasterizer, drive_file_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	var driveFileID sql.NullString
	if record.DriveFileID != "" {
		driveFileID = sql.NullString{String: record.DriveFileID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		record.TemplateID,
		record.TemplateName,
		record.CaptionCount,
		record.Filename,
		record.ByteSize,
		record.Rasterizer,
		driveFileID,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		log.Printf("❌ Error inserting export record for template %s: %v", record.TemplateID, err)
		return fmt.Errorf("failed to insert export record: %w", err)
	}

	log.Printf("💾 Export recorded: id=%d template=%s bytes=%d", record.ID, record.TemplateID, record.ByteSize)
	return nil
}

// ListRecent returns the most recent exports, newest first
func (r *ExportRepository) ListRecent(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, template_id, template_name, caption_count, filename, byte_size, rasterizer, drive_file_id, created_at
		FROM meme_exports
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export history: %w", err)
	}
	defer rows.Close()

	records := []models.ExportRecord{}
	for rows.Next() {
		var rec models.ExportRecord
		var driveFileID sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.TemplateID,
			&rec.TemplateName,
			&rec.CaptionCount,
			&rec.Filename,
			&rec.ByteSize,
			&rec.Rasterizer,
			&driveFileID,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan export record: %w", err)
		}
		rec.DriveFileID = driveFileID.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate export history: %w", err)
	}

	return records, nil
}
