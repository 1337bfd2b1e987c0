package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/lateral-entry-portal/portal/internal/config"
	"github.com/lateral-entry-portal/portal/internal/datasource"
	"github.com/lateral-entry-portal/portal/internal/httpclient"
	"github.com/lateral-entry-portal/portal/internal/sources"
	"github.com/lateral-entry-portal/portal/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// rootOptions resolves the persistent flags, environment and config file
type rootOptions struct {
	v *viper.Viper
}

// loadConfig loads the config file (explicit or from the XDG config dirs)
// and applies flag and environment overrides on top
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var opts []config.Option
	if path := o.v.GetString(flagConfig); path != "" {
		opts = append(opts, config.WithConfigPath(path))
	}
	opts = append(opts,
		config.WithAPIEndpoint(o.v.GetString(flagAPI)),
		config.WithStaticDir(o.v.GetString(flagStaticDir)),
		config.WithStaticURL(o.v.GetString(flagStaticURL)),
		config.WithTimeout(o.v.GetString(flagTimeout)),
	)

	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// session is a configured DataSource with its telemetry
type session struct {
	cfg        *config.Config
	telemetry  *telemetry.Telemetry
	dataSource *datasource.DataSource
}

// newSession builds the DataSource described by the configuration
func (o *rootOptions) newSession(ctx context.Context) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		return nil, err
	}

	client := httpclient.NewDefaultClient(cfg.GetTimeout())

	static, err := sources.NewStaticSource(&cfg.Static, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create static source: %w", err)
	}

	metrics, err := telemetry.NewDataSourceMetrics(tel.MeterProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	dsOpts := []datasource.Option{
		datasource.WithMetrics(metrics),
		datasource.WithTracer(tel.Tracer()),
	}
	if cfg.HasAPI() {
		dsOpts = append(dsOpts, datasource.WithAPI(cfg.API.Endpoint, client))
	}

	ds, err := datasource.New(static, dsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create data source: %w", err)
	}

	slog.Debug("Data source ready",
		"api", cfg.HasAPI(),
		"static", cfg.Static.GetType(),
	)

	return &session{cfg: cfg, telemetry: tel, dataSource: ds}, nil
}

// close flushes telemetry
func (s *session) close() {
	shutdownTelemetry(s.telemetry)
}

func shutdownTelemetry(tel *telemetry.Telemetry) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := tel.Shutdown(ctx); err != nil {
		slog.Warn("Failed to shut down telemetry", "error", err)
	}
}
