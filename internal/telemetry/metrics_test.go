package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader, scopeName string) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	found := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		if scope.Scope.Name != scopeName {
			continue
		}
		for _, m := range scope.Metrics {
			found[m.Name] = m
		}
	}
	return found
}

func TestNewDataSourceMetrics(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when provider is nil", func(t *testing.T) {
		t.Parallel()

		metrics, err := NewDataSourceMetrics(nil)
		require.NoError(t, err)
		assert.Nil(t, metrics)
	})

	t.Run("no-op when metrics is nil", func(t *testing.T) {
		t.Parallel()

		var metrics *DataSourceMetrics
		// Should not panic
		metrics.RecordRequest(context.Background(), "stats", "api", "ok", time.Millisecond)
		metrics.RecordFallback(context.Background(), "stats")
	})
}

func TestDataSourceMetrics_Record(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewDataSourceMetrics(mp)
	require.NoError(t, err)
	require.NotNil(t, metrics)

	ctx := context.Background()
	metrics.RecordRequest(ctx, "batches/{year}", "static", "ok", 20*time.Millisecond)
	metrics.RecordRequest(ctx, "batches/{year}", "static", "not_found", 5*time.Millisecond)
	metrics.RecordFallback(ctx, "stats")

	found := collect(t, reader, DataSourceMeterName)

	requests, ok := found["portal_datasource_requests_total"]
	require.True(t, ok, "expected requests counter")
	sum, ok := requests.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)
	assert.Len(t, sum.DataPoints, 2)

	fallbacks, ok := found["portal_datasource_fallbacks_total"]
	require.True(t, ok, "expected fallbacks counter")
	fsum, ok := fallbacks.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, fsum.DataPoints, 1)
	assert.Equal(t, int64(1), fsum.DataPoints[0].Value)

	_, ok = found["portal_datasource_request_duration_seconds"]
	assert.True(t, ok, "expected duration histogram")
}

func TestExportMetrics_Record(t *testing.T) {
	t.Parallel()

	metrics, err := NewExportMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, metrics)
	metrics.RecordExport(context.Background(), 10, time.Second, true)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err = NewExportMetrics(mp)
	require.NoError(t, err)
	metrics.RecordExport(context.Background(), 63, 150*time.Millisecond, true)

	found := collect(t, reader, ExportMeterName)

	gauge, ok := found["portal_export_entrants"]
	require.True(t, ok)
	g, ok := gauge.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, g.DataPoints, 1)
	assert.Equal(t, int64(63), g.DataPoints[0].Value)
}
