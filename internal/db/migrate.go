package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list re-runs safely on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS matrices (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		version     TEXT NOT NULL,
		fingerprint TEXT NOT NULL UNIQUE,
		source      TEXT NOT NULL,
		is_valid    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		deployed_at TEXT,
		UNIQUE(name, version)
	)`,

	`CREATE TABLE IF NOT EXISTS segment_rules (
		matrix_id    TEXT NOT NULL REFERENCES matrices(id) ON DELETE CASCADE,
		idx          INTEGER NOT NULL,
		employee_min INTEGER NOT NULL,
		employee_max INTEGER,
		gmv_min      REAL NOT NULL,
		gmv_max      REAL,
		segment      TEXT NOT NULL,
		PRIMARY KEY (matrix_id, idx)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_matrices_name ON matrices(name)`,
	`CREATE INDEX IF NOT EXISTS idx_matrices_deployed ON matrices(deployed_at) WHERE deployed_at IS NOT NULL`,
}
