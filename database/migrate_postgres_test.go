//go:build integration

package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Postgres(t *testing.T) {
	t.Parallel()

	dsn := SetupTestDB(t)

	m, err := GetMigrate(dsn)
	require.NoError(t, err)
	defer m.Close()

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	// Test full migration rollback, then reapply
	require.NoError(t, m.Down())
	require.NoError(t, m.Up())

	// Applying again is not an error
	require.NoError(t, MigrateUp(dsn))

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	defer func() { _ = conn.Close(ctx) }()

	var columns int
	err = conn.QueryRow(ctx,
		`SELECT count(*) FROM information_schema.columns WHERE table_name = 'lateral_entrants'`,
	).Scan(&columns)
	require.NoError(t, err)
	assert.Equal(t, 13, columns)
}
