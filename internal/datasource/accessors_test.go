package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lateral-entry-portal/portal/internal/sources"
)

func TestAccessors(t *testing.T) {
	t.Parallel()

	ds := newStaticDataSource(t, entrantListJSON)
	ctx := context.Background()

	stats, err := ds.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalAppointees)

	batches, err := ds.Batches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "1st Phase (2018)", batches[0].Phase)

	batch, err := ds.Batch(ctx, 2023)
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Statistics.Total)

	_, err = ds.Batch(ctx, 2030)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := ds.Entrants(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := ds.Entrants(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	entrant, err := ds.Entrant(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Meera Iyer", entrant.Name)

	_, err = ds.Entrant(ctx, 500)
	assert.ErrorIs(t, err, ErrNotFound)

	ministries, err := ds.Ministries(ctx)
	require.NoError(t, err)
	assert.Len(t, ministries, 3)

	positions, err := ds.Positions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Director", positions[0].Name)

	found, err := ds.Search(ctx, "rao")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(3), found[0].ID)

	timeline, err := ds.Timeline(ctx)
	require.NoError(t, err)
	assert.Len(t, timeline, 3)
}

func TestAccessors_Unavailable(t *testing.T) {
	t.Parallel()

	ds, err := New(sources.NewFileStaticSource(t.TempDir()))
	require.NoError(t, err)

	_, err = ds.Stats(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, sources.ErrDocumentNotFound)
}
