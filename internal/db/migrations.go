package db

import (
	"context"
	"fmt"
)

// prizeColumns were added to draws after the first schema; databases created
// before then lack them.
var prizeColumns = []string{"prize_1", "prize_2", "prize_3", "prize_4", "prize_5"}

// migrate brings an existing database up to the current schema.
func (db *DB) migrate() error {
	existing, err := db.columns("draws")
	if err != nil {
		return err
	}

	for _, col := range prizeColumns {
		if existing[col] {
			continue
		}
		query := fmt.Sprintf("ALTER TABLE draws ADD COLUMN %s TEXT", col)
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			return fmt.Errorf("failed to add column %s: %w", col, err)
		}
	}

	// modernc.org/sqlite stores time.Time as "2006-01-02 15:04:05 +0000 UTC",
	// which SQLite's date functions cannot read.
	fixes := []string{
		`UPDATE draws
		 SET updated_at = SUBSTR(updated_at, 1, 19)
		 WHERE length(updated_at) > 19 AND updated_at LIKE '% UTC'`,
		`UPDATE history_imports
		 SET imported_at = SUBSTR(imported_at, 1, 19)
		 WHERE length(imported_at) > 19 AND imported_at LIKE '% UTC'`,
	}
	for _, query := range fixes {
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			return fmt.Errorf("failed to fix legacy time formats: %w", err)
		}
	}

	return nil
}

// columns returns the column names of table.
func (db *DB) columns(table string) (map[string]bool, error) {
	rows, err := db.QueryContext(context.Background(), fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
