// Package database owns the lateral_entrants schema and its migrations.
// The same migrations run on SQLite and PostgreSQL.
package database

import (
	"embed"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" // registers sqlite://
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// IsPostgres reports whether dsn is a PostgreSQL connection string.
// Anything else is treated as a SQLite file path.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// migrateURL converts a store DSN into the URL form golang-migrate expects
func migrateURL(dsn string) string {
	if IsPostgres(dsn) {
		_, rest, _ := strings.Cut(dsn, "://")
		return "pgx5://" + rest
	}
	return "sqlite://" + strings.TrimPrefix(dsn, "sqlite://")
}

// GetMigrate returns a migrate instance for the database at dsn
func GetMigrate(dsn string) (*migrate.Migrate, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database is required")
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database for migration: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration. An up-to-date database is not an error.
func MigrateUp(dsn string) error {
	m, err := GetMigrate(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
