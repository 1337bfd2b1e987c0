package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/lateral-entry-portal/portal/internal/entrants"
)

// SQLiteStore reads entrants from a SQLite database file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens an existing SQLite database read-only
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("database file %s does not exist", path)
		}
		return nil, fmt.Errorf("failed to stat database file: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// ListEntrants implements Store
func (s *SQLiteStore) ListEntrants(ctx context.Context) ([]entrants.Entrant, error) {
	rows, err := s.db.QueryContext(ctx, listEntrantsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query entrants: %w", err)
	}
	defer rows.Close()

	list := make([]entrants.Entrant, 0)
	for rows.Next() {
		e, err := scanEntrant(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entrants: %w", err)
	}

	return list, nil
}

// Close implements Store
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
