package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_documents.up.sql
var documentsMigrationSQL string

// EnsureSchema applies the documents schema on startup. Statements are
// idempotent, so re-running on every boot is safe.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, documentsMigrationSQL); err != nil {
		return fmt.Errorf("apply documents schema: %w", err)
	}

	slog.Info("database schema ready")
	return nil
}
