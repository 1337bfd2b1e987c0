package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lateral-entry-portal/portal/internal/datasource"
	"github.com/lateral-entry-portal/portal/internal/entrants"
	"github.com/lateral-entry-portal/portal/internal/snapshot"
	"github.com/lateral-entry-portal/portal/internal/sources"
	sourcemocks "github.com/lateral-entry-portal/portal/internal/sources/mocks"
)

func newSQLiteExporter(t *testing.T) *Exporter {
	t.Helper()

	store, err := NewSQLiteStore(context.Background(), seedDatabase(t, sampleRows...))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewExporter(store)
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	report, err := newSQLiteExporter(t).Export(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Entrants)
	assert.Equal(t, 3, report.Batches)
	assert.Len(t, report.Documents, 3)
	require.NoError(t, snapshot.ValidateSource(ctx, sources.NewFileStaticSource(dir)))

	raw, err := os.ReadFile(filepath.Join(dir, string(sources.DocumentEntrants)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n  {\n    \"id\": 5,"), "two-space indented array")
	assert.Contains(t, string(raw), "Commerce & Industry", "HTML characters are not escaped")
	assert.Equal(t, len(raw), report.Documents[sources.DocumentEntrants])

	// The exported snapshots serve the data source
	ds, err := datasource.New(sources.NewFileStaticSource(dir))
	require.NoError(t, err)

	stats, err := ds.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalAppointees)
	assert.Equal(t, []entrants.MinistryCount{
		{Ministry: "Finance", Count: 2},
		{Ministry: "Civil Aviation", Count: 1},
		{Ministry: "Commerce & Industry", Count: 1},
	}, stats.ByMinistry)

	batches, err := ds.Batches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, "Advertisement No. 17/2018", batches[0].Advertisement)

	batch, err := ds.Batch(ctx, 2021)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Statistics.Total)
}

func TestExporter_ExportReplacesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, string(sources.DocumentStats)), []byte(`{"stale":true}`), 0o600))

	_, err := newSQLiteExporter(t).Export(context.Background(), dir)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, string(sources.DocumentStats)))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "stale")

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestExporter_ExportLocked(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lock := flock.New(filepath.Join(dir, LockFile))
	locked, err := lock.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	t.Cleanup(func() { _ = lock.Unlock() })

	_, err = newSQLiteExporter(t).Export(context.Background(), dir)
	assert.ErrorIs(t, err, ErrExportInProgress)
}

func TestExporter_ExportWriteFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	storage := sourcemocks.NewMockStorageManager(ctrl)
	storage.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full")).MinTimes(1).MaxTimes(3)

	exporter := newSQLiteExporter(t)
	exporter.newStorage = func(string) sources.StorageManager { return storage }

	_, err := exporter.Export(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

type failingStore struct{}

func (failingStore) ListEntrants(context.Context) ([]entrants.Entrant, error) {
	return nil, errors.New("database is locked")
}

func (failingStore) Close() error { return nil }

func TestExporter_ExportStoreFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewExporter(failingStore{}).Export(context.Background(), dir)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, string(sources.DocumentStats)))
	assert.True(t, os.IsNotExist(statErr), "nothing is written on failure")
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := Marshal(map[string]string{"ministry": "Road Transport & Highways <MoRTH>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"ministry\": \"Road Transport & Highways <MoRTH>\"\n}\n", string(data))
}
