package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/lateral-entry-portal/portal/internal/entrants"
	"github.com/lateral-entry-portal/portal/internal/otel"
	"github.com/lateral-entry-portal/portal/internal/snapshot"
	"github.com/lateral-entry-portal/portal/internal/sources"
	"github.com/lateral-entry-portal/portal/internal/telemetry"
)

// LockFile is created in the output directory while an export runs
const LockFile = ".export.lock"

// ErrExportInProgress is returned when another export holds the output directory lock
var ErrExportInProgress = errors.New("another export is running")

// Report summarises a finished export
type Report struct {
	Dir       string
	Entrants  int
	Batches   int
	Documents map[sources.Document]int
	Duration  time.Duration
}

// Exporter writes stats.json, batches.json and entrants.json from a Store
type Exporter struct {
	store   Store
	metrics *telemetry.ExportMetrics
	tracer  trace.Tracer

	// newStorage is swapped in tests
	newStorage func(dir string) sources.StorageManager
}

// Option configures an Exporter
type Option func(*Exporter)

// WithMetrics records export metrics
func WithMetrics(m *telemetry.ExportMetrics) Option {
	return func(e *Exporter) {
		e.metrics = m
	}
}

// WithTracer records a span per export
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Exporter) {
		e.tracer = tracer
	}
}

// NewExporter creates an exporter reading from store
func NewExporter(store Store, opts ...Option) *Exporter {
	e := &Exporter{
		store:      store,
		newStorage: sources.NewFileStorageManager,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export regenerates the snapshot documents in dir. Every document is
// validated before any file is replaced.
func (e *Exporter) Export(ctx context.Context, dir string) (report *Report, err error) {
	start := time.Now()
	ctx, span := otel.StartSpan(ctx, e.tracer, "export.Export")
	defer span.End()

	entrantCount := 0
	defer func() {
		otel.RecordError(span, err)
		e.metrics.RecordExport(ctx, entrantCount, time.Since(start), err == nil)
	}()

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", dir, err)
	}
	if !locked {
		return nil, ErrExportInProgress
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			slog.Warn("Failed to release export lock", "path", lock.Path(), "error", unlockErr)
		}
	}()

	list, err := e.store.ListEntrants(ctx)
	if err != nil {
		return nil, err
	}
	entrantCount = len(list)

	batches := entrants.BuildBatches(list)
	docs, err := encodeDocuments(map[sources.Document]any{
		sources.DocumentStats:    entrants.BuildStats(list),
		sources.DocumentBatches:  batches,
		sources.DocumentEntrants: list,
	})
	if err != nil {
		return nil, err
	}

	storage := e.newStorage(dir)
	g, gctx := errgroup.WithContext(ctx)
	for doc, data := range docs {
		g.Go(func() error {
			return storage.Store(gctx, doc, data)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to write snapshots: %w", err)
	}

	report = &Report{
		Dir:       dir,
		Entrants:  len(list),
		Batches:   len(batches),
		Documents: make(map[sources.Document]int, len(docs)),
		Duration:  time.Since(start),
	}
	for doc, data := range docs {
		report.Documents[doc] = len(data)
	}

	span.SetAttributes(otel.AttrResultCount.Int(len(list)))
	slog.InfoContext(ctx, "Exported static snapshots",
		"dir", dir,
		"entrants", report.Entrants,
		"batches", report.Batches,
		"duration", report.Duration,
	)

	return report, nil
}

// encodeDocuments marshals and validates every document
func encodeDocuments(values map[sources.Document]any) (map[sources.Document][]byte, error) {
	docs := make(map[sources.Document][]byte, len(values))
	for doc, v := range values {
		data, err := Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", doc, err)
		}
		if err := snapshot.Validate(doc, data); err != nil {
			return nil, err
		}
		docs[doc] = data
	}
	return docs, nil
}

// Marshal encodes v the way snapshot documents are written: two-space
// indentation with non-ASCII and HTML characters left as they are
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
