package models

import "time"

// HistoryImport records one import of a history file into the database.
type HistoryImport struct {
	ID         int64     `json:"id"`
	SourcePath string    `json:"source_path"`
	Checksum   string    `json:"checksum"`
	DrawCount  int       `json:"draw_count"`
	ImportedAt time.Time `json:"imported_at"`
}
