// Package api provides the read-only HTTP API over the portal data source.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lateral-entry-portal/portal/internal/datasource"
)

// OriginHeader tells clients whether a response came from the live API or a snapshot
const OriginHeader = "X-Portal-Origin"

//go:generate mockgen -destination=mocks/mock_resolver.go -package=mocks -source=server.go Resolver

// Resolver resolves portal endpoints; *datasource.DataSource implements it
type Resolver interface {
	FetchResource(ctx context.Context, endpoint string, params datasource.Params) datasource.Result
}

// ServerOption configures the API server
type ServerOption func(*serverConfig)

// serverConfig holds the server configuration
type serverConfig struct {
	middlewares []func(http.Handler) http.Handler
}

// WithMiddlewares adds middleware to the server
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// NewServer creates the HTTP router serving res under /api
func NewServer(res Resolver, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)
		r.Get("/*", resourceHandler(res))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorResponse(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.DebugContext(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, map[string]string{"status": "healthy"}, http.StatusOK)
}

// resourceHandler passes the path below /api and its query string to the resolver
func resourceHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoint := chi.URLParam(r, "*")
		if r.URL.RawQuery != "" {
			endpoint += "?" + r.URL.RawQuery
		}

		result := res.FetchResource(r.Context(), endpoint, nil)
		w.Header().Set(OriginHeader, string(result.Origin))

		switch result.Status {
		case datasource.StatusOK:
			writeRawResponse(w, result.Data, http.StatusOK)
		case datasource.StatusNotFound:
			writeErrorResponse(w, "resource not found", http.StatusNotFound)
		default:
			if errors.Is(result.Err, datasource.ErrUnknownEndpoint) {
				writeErrorResponse(w, "unknown endpoint", http.StatusNotFound)
				return
			}
			writeErrorResponse(w, "resource unavailable", http.StatusServiceUnavailable)
		}
	}
}
