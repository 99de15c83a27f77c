package db

import (
	"database/sql"
	"fmt"
)

// Migration represents one ordered schema upgrade.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// baselineVersion is the schema version SchemaSQL itself represents.
const baselineVersion = 1

// migrations lists upgrades beyond the baseline, in order. Fresh installs
// get the full SchemaSQL directly and only record the latest version here.
var migrations = []Migration{}

func latestVersion() int {
	version := baselineVersion
	for _, m := range migrations {
		if m.Version > version {
			version = m.Version
		}
	}
	return version
}

// RunMigrations applies every migration above the recorded schema version.
func RunMigrations(database *sql.DB) error {
	if _, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var current sql.NullInt64
	if err := database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if !current.Valid {
		// Fresh install: SchemaSQL already created the latest layout.
		_, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", latestVersion())
		if err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	}

	for _, m := range migrations {
		if int64(m.Version) <= current.Int64 {
			continue
		}
		if err := m.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}
