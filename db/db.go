package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the database connection
var DB *sql.DB

// schema creates the export history table
const schema = `
CREATE TABLE IF NOT EXISTS meme_exports (
	id            BIGSERIAL PRIMARY KEY,
	template_id   TEXT        NOT NULL,
	template_name TEXT        NOT NULL,
	caption_count INTEGER     NOT NULL,
	filename      TEXT        NOT NULL,
	byte_size     INTEGER     NOT NULL,
	rasterizer    TEXT        NOT NULL,
	drive_file_id TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// InitDB opens the database connection and makes sure the schema exists
func InitDB(ctx context.Context, connStr string) error {
	if connStr == "" {
		return fmt.Errorf("database connection string is empty. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	var err error
	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("✓ Database connection established successfully")
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
