package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// RecordImport logs an import of a history file.
func (db *DB) RecordImport(imp *models.HistoryImport) error {
	importedAt := imp.ImportedAt
	if importedAt.IsZero() {
		importedAt = time.Now()
	}

	result, err := db.ExecContext(context.Background(), `
		INSERT INTO history_imports (source_path, checksum, draw_count, imported_at)
		VALUES (?, ?, ?, ?)
	`,
		imp.SourcePath,
		imp.Checksum,
		imp.DrawCount,
		importedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		imp.ID = id
	}
	imp.ImportedAt = importedAt
	return nil
}

// GetLastImport returns the most recent import, or nil when none exists.
func (db *DB) GetLastImport() (*models.HistoryImport, error) {
	var (
		imp        models.HistoryImport
		importedAt string
	)
	err := db.QueryRowContext(context.Background(), `
		SELECT id, source_path, checksum, draw_count, CAST(imported_at AS TEXT)
		FROM history_imports
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&imp.ID, &imp.SourcePath, &imp.Checksum, &imp.DrawCount, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last import: %w", err)
	}

	imp.ImportedAt, err = time.ParseInLocation(time.DateTime, importedAt, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("failed to parse import time %q: %w", importedAt, err)
	}
	return &imp, nil
}

// PruneImports keeps only the newest keep import records.
func (db *DB) PruneImports(keep int) (int64, error) {
	result, err := db.ExecContext(context.Background(), `
		DELETE FROM history_imports
		WHERE id NOT IN (SELECT id FROM history_imports ORDER BY id DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune imports: %w", err)
	}
	return result.RowsAffected()
}
