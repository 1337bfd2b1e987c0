package datasource

import (
	"context"
	"strconv"

	"github.com/lateral-entry-portal/portal/internal/entrants"
)

// fetchAs resolves endpoint and decodes the result into T
func fetchAs[T any](ctx context.Context, d *DataSource, endpoint string, params Params) (T, error) {
	var out T
	if err := d.FetchResource(ctx, endpoint, params).Decode(&out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Stats returns the portal-wide statistics
func (d *DataSource) Stats(ctx context.Context) (*entrants.Stats, error) {
	return fetchAs[*entrants.Stats](ctx, d, "stats", nil)
}

// Batches returns every batch with its metadata
func (d *DataSource) Batches(ctx context.Context) ([]entrants.BatchInfo, error) {
	return fetchAs[[]entrants.BatchInfo](ctx, d, "batches", nil)
}

// Batch returns the summary of one batch year, or ErrNotFound
func (d *DataSource) Batch(ctx context.Context, year int) (*entrants.BatchSummary, error) {
	return fetchAs[*entrants.BatchSummary](ctx, d, "batches/"+strconv.Itoa(year), nil)
}

// Entrants returns the entrant list, truncated to limit when limit > 0
func (d *DataSource) Entrants(ctx context.Context, limit int) ([]entrants.Entrant, error) {
	var params Params
	if limit > 0 {
		params = Params{"limit": limit}
	}
	return fetchAs[[]entrants.Entrant](ctx, d, "entrants", params)
}

// Entrant returns one entrant by id, or ErrNotFound
func (d *DataSource) Entrant(ctx context.Context, id int64) (*entrants.Entrant, error) {
	return fetchAs[*entrants.Entrant](ctx, d, "entrants/"+strconv.FormatInt(id, 10), nil)
}

// Ministries returns entrant counts per ministry
func (d *DataSource) Ministries(ctx context.Context) ([]entrants.NamedCount, error) {
	return fetchAs[[]entrants.NamedCount](ctx, d, "ministries", nil)
}

// Positions returns entrant counts per position
func (d *DataSource) Positions(ctx context.Context) ([]entrants.NamedCount, error) {
	return fetchAs[[]entrants.NamedCount](ctx, d, "positions", nil)
}

// Search returns entrants matching q
func (d *DataSource) Search(ctx context.Context, q string) ([]entrants.Entrant, error) {
	return fetchAs[[]entrants.Entrant](ctx, d, "search", Params{"q": q})
}

// Timeline returns entrants grouped by batch year
func (d *DataSource) Timeline(ctx context.Context) ([]entrants.TimelineEntry, error) {
	return fetchAs[[]entrants.TimelineEntry](ctx, d, "timeline", nil)
}
