package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// DataSourceMeterName is the name used for the data source meter
	DataSourceMeterName = "github.com/lateral-entry-portal/portal/datasource"

	// ExportMeterName is the name used for the snapshot export meter
	ExportMeterName = "github.com/lateral-entry-portal/portal/export"
)

// DataSourceMetrics holds the instruments recorded by the data source.
// A nil *DataSourceMetrics is valid and records nothing.
type DataSourceMetrics struct {
	requests  metric.Int64Counter
	fallbacks metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewDataSourceMetrics creates the data source instruments.
// If provider is nil, it returns nil (no-op metrics).
func NewDataSourceMetrics(provider metric.MeterProvider) (*DataSourceMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(DataSourceMeterName)

	requests, err := meter.Int64Counter(
		"portal_datasource_requests_total",
		metric.WithDescription("Resolved data source requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	fallbacks, err := meter.Int64Counter(
		"portal_datasource_fallbacks_total",
		metric.WithDescription("Times the live API failed and the session switched to static snapshots"),
		metric.WithUnit("{fallback}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"portal_datasource_request_duration_seconds",
		metric.WithDescription("Duration of data source requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	return &DataSourceMetrics{
		requests:  requests,
		fallbacks: fallbacks,
		duration:  duration,
	}, nil
}

// RecordRequest records one resolved request
func (m *DataSourceMetrics) RecordRequest(
	ctx context.Context,
	endpoint, origin, status string,
	duration time.Duration,
) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("origin", origin),
		attribute.String("status", status),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, duration.Seconds(), attrs)
}

// RecordFallback records the live API to static snapshot switch
func (m *DataSourceMetrics) RecordFallback(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	m.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint", endpoint)))
}

// ExportMetrics holds the instruments recorded by the snapshot exporter.
// A nil *ExportMetrics is valid and records nothing.
type ExportMetrics struct {
	entrants metric.Int64Gauge
	duration metric.Float64Histogram
}

// NewExportMetrics creates the export instruments.
// If provider is nil, it returns nil (no-op metrics).
func NewExportMetrics(provider metric.MeterProvider) (*ExportMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(ExportMeterName)

	entrants, err := meter.Int64Gauge(
		"portal_export_entrants",
		metric.WithDescription("Number of entrants written by the last export"),
		metric.WithUnit("{entrant}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"portal_export_duration_seconds",
		metric.WithDescription("Duration of snapshot exports in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ExportMetrics{entrants: entrants, duration: duration}, nil
}

// RecordExport records the outcome of one export run
func (m *ExportMetrics) RecordExport(ctx context.Context, entrants int, duration time.Duration, success bool) {
	if m == nil {
		return
	}

	if success {
		m.entrants.Record(ctx, int64(entrants))
	}
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.Bool("success", success)))
}
