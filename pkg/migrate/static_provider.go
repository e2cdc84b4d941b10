package migrate

import (
	"context"
	"fmt"
)

// StaticProvider serves migrations compiled into the binary
type StaticProvider struct {
	migrations     []Migration
	migrationTable string
}

// NewStaticProvider creates a provider for a fixed list of migrations
func NewStaticProvider(migrations []Migration, migrationTable string) *StaticProvider {
	if migrationTable == "" {
		migrationTable = "schema_migrations"
	}
	return &StaticProvider{
		migrations:     migrations,
		migrationTable: migrationTable,
	}
}

// GetMigrations returns a copy of the migrations, rejecting duplicate versions
func (sp *StaticProvider) GetMigrations() ([]Migration, error) {
	seen := make(map[int]bool, len(sp.migrations))
	for _, m := range sp.migrations {
		if m.Version <= 0 {
			return nil, fmt.Errorf("migration %q has invalid version %d", m.Name, m.Version)
		}
		if seen[m.Version] {
			return nil, fmt.Errorf("duplicate migration version %d", m.Version)
		}
		seen[m.Version] = true
	}
	return append([]Migration(nil), sp.migrations...), nil
}

// CreateMigrationTable creates the version table if it does not exist
func (sp *StaticProvider) CreateMigrationTable(ctx context.Context, db DB) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL
	)`, sp.migrationTable)
	_, err := db.ExecContext(ctx, query)
	return err
}

// GetCurrentVersion returns the applied version, or 0 for a fresh database
func (sp *StaticProvider) GetCurrentVersion(ctx context.Context, db DB) (int, error) {
	var version int
	query := fmt.Sprintf("SELECT COALESCE(MAX(version), 0) FROM %s", sp.migrationTable)
	if err := db.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// SetVersion records version as the applied version
func (sp *StaticProvider) SetVersion(ctx context.Context, db DB, version int) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, version) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET version = excluded.version`, sp.migrationTable)
	_, err := db.ExecContext(ctx, query, version)
	return err
}
