package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/lateral-entry-portal/portal/internal/entrants"
	"github.com/lateral-entry-portal/portal/internal/httpclient"
	"github.com/lateral-entry-portal/portal/internal/otel"
	"github.com/lateral-entry-portal/portal/internal/sources"
	"github.com/lateral-entry-portal/portal/internal/telemetry"
)

// ErrInvalidAPIResponse is returned when the live API answers 2xx with a
// body that is not usable JSON
var ErrInvalidAPIResponse = errors.New("invalid API response")

// DataSource resolves portal endpoints against the live API with a sticky
// fallback to static snapshots. It is safe for concurrent use.
type DataSource struct {
	apiBaseURL string
	apiClient  httpclient.Client
	static     sources.StaticSource

	// staticOnly latches once the live API fails and never resets
	staticOnly atomic.Bool

	metrics *telemetry.DataSourceMetrics
	tracer  trace.Tracer
}

// Option configures a DataSource
type Option func(*DataSource) error

// WithAPI enables the live portal API at baseURL. An empty baseURL leaves
// the DataSource in static mode.
func WithAPI(baseURL string, client httpclient.Client) Option {
	return func(d *DataSource) error {
		if baseURL == "" {
			return nil
		}
		if client == nil {
			return fmt.Errorf("http client is required for API %s", baseURL)
		}
		if _, err := url.Parse(baseURL); err != nil {
			return fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
		}
		d.apiBaseURL = strings.TrimSuffix(baseURL, "/")
		d.apiClient = client
		return nil
	}
}

// WithMetrics records request and fallback metrics. A nil value disables them.
func WithMetrics(m *telemetry.DataSourceMetrics) Option {
	return func(d *DataSource) error {
		d.metrics = m
		return nil
	}
}

// WithTracer records a span per request. A nil tracer disables tracing.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *DataSource) error {
		d.tracer = tracer
		return nil
	}
}

// New creates a DataSource backed by the given static snapshots
func New(static sources.StaticSource, opts ...Option) (*DataSource, error) {
	if static == nil {
		return nil, fmt.Errorf("static source is required")
	}

	d := &DataSource{static: static}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// UsingStaticFallback reports whether requests are answered from static
// snapshots, either because no API is configured or because it has failed
func (d *DataSource) UsingStaticFallback() bool {
	return d.apiClient == nil || d.staticOnly.Load()
}

// FetchResource resolves endpoint with params. Params embedded in the
// endpoint ("search?q=x") are merged, with explicit params taking precedence.
// It never returns an error directly; failures are reported through the Result.
func (d *DataSource) FetchResource(ctx context.Context, endpoint string, params Params) Result {
	start := time.Now()
	ctx, span := otel.StartSpan(ctx, d.tracer, "datasource.FetchResource",
		trace.WithAttributes(otel.AttrEndpoint.String(endpoint)),
	)
	defer span.End()

	res, kind := d.resolve(ctx, endpoint, params)

	span.SetAttributes(
		otel.AttrEndpointKey.String(kind),
		otel.AttrOrigin.String(string(res.Origin)),
		otel.AttrStatus.String(res.Status.String()),
	)
	if res.Status == StatusUnavailable {
		otel.RecordError(span, res.Err)
		slog.ErrorContext(ctx, "Resource unavailable",
			"endpoint", endpoint,
			"origin", res.Origin,
			"error", res.Err,
		)
	}
	d.metrics.RecordRequest(ctx, kind, string(res.Origin), res.Status.String(), time.Since(start))

	return res
}

// resolve returns the result and the endpoint kind used as a metric label
func (d *DataSource) resolve(ctx context.Context, endpoint string, params Params) (Result, string) {
	ep, err := ParseEndpoint(endpoint)
	if err != nil {
		return Result{Endpoint: endpoint, Status: StatusUnavailable, Origin: OriginNone, Err: err}, "unknown"
	}
	kind := ep.Kind.String()

	query, err := mergeQuery(ep.Query, params)
	if err != nil {
		return Result{Endpoint: endpoint, Status: StatusUnavailable, Origin: OriginNone, Err: err}, kind
	}

	if !d.UsingStaticFallback() {
		data, err := d.fetchLive(ctx, ep, query)
		if err == nil {
			return Result{Endpoint: endpoint, Status: StatusOK, Origin: OriginAPI, Data: data}, kind
		}
		d.tripFallback(ctx, ep, err)
	}

	return d.fetchStatic(ctx, endpoint, ep, query), kind
}

// tripFallback latches static mode; only the first failure is reported
func (d *DataSource) tripFallback(ctx context.Context, ep Endpoint, cause error) {
	if !d.staticOnly.CompareAndSwap(false, true) {
		slog.DebugContext(ctx, "Live API failed after fallback was already active",
			"endpoint", ep.Path(),
			"error", cause,
		)
		return
	}

	d.metrics.RecordFallback(ctx, ep.Kind.String())
	slog.WarnContext(ctx, "Live API failed, switching to static snapshots",
		"endpoint", ep.Path(),
		"api", d.apiBaseURL,
		"status_code", httpclient.StatusCode(cause),
		"error", cause,
	)
}

func (d *DataSource) fetchLive(ctx context.Context, ep Endpoint, query url.Values) (json.RawMessage, error) {
	target := d.apiBaseURL + "/" + ep.Path()
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	body, err := d.apiClient.Get(ctx, target)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s returned non-JSON body", ErrInvalidAPIResponse, target)
	}

	if ep.Kind == KindEntrants {
		list, err := entrants.ListJSON(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAPIResponse, err)
		}
		return list, nil
	}

	return body, nil
}

func (d *DataSource) fetchStatic(ctx context.Context, endpoint string, ep Endpoint, query url.Values) Result {
	route := staticRoutes[ep.Kind]
	res := Result{Endpoint: endpoint, Origin: OriginStatic}

	data, err := d.static.Fetch(ctx, route.document)
	if err != nil {
		res.Status = StatusUnavailable
		res.Err = fmt.Errorf("failed to read %s from %s: %w", route.document, d.static.Location(route.document), err)
		return res
	}

	value, found, err := route.resolve(ep, query, data)
	if err != nil {
		res.Status = StatusUnavailable
		res.Err = fmt.Errorf("failed to resolve %s from %s: %w", ep.Path(), route.document, err)
		return res
	}
	if !found {
		res.Status = StatusNotFound
		return res
	}

	if raw, ok := value.(json.RawMessage); ok {
		res.Status = StatusOK
		res.Data = raw
		return res
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		res.Status = StatusUnavailable
		res.Err = fmt.Errorf("failed to encode %s: %w", ep.Path(), err)
		return res
	}

	res.Status = StatusOK
	res.Data = encoded
	return res
}
