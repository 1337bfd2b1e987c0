package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Equal(t, DefaultServiceName, cfg.GetServiceName())
	assert.Equal(t, "unknown", cfg.GetServiceVersion())
	assert.Equal(t, DefaultEndpoint, cfg.GetEndpoint())
	assert.Equal(t, DefaultSampling, (&TracingConfig{}).GetSampling())

	cfg = &Config{ServiceName: "portal-ci", ServiceVersion: "1.2.0", Endpoint: "otel:4318"}
	assert.Equal(t, "portal-ci", cfg.GetServiceName())
	assert.Equal(t, "1.2.0", cfg.GetServiceVersion())
	assert.Equal(t, "otel:4318", cfg.GetEndpoint())
	assert.Equal(t, 0.5, (&TracingConfig{Sampling: 0.5}).GetSampling())

	assert.Equal(t, DefaultMetricsInterval, (&MetricsConfig{}).GetInterval())
	assert.Equal(t, DefaultMetricsInterval, (&MetricsConfig{Interval: "often"}).GetInterval())
	assert.Equal(t, 10*time.Second, (&MetricsConfig{Interval: "10s"}).GetInterval())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "nil config", config: nil},
		{name: "disabled ignores bad sampling", config: &Config{Tracing: &TracingConfig{Enabled: true, Sampling: 3}}},
		{name: "valid sampling", config: &Config{Enabled: true, Tracing: &TracingConfig{Enabled: true, Sampling: 0.25}}},
		{name: "sampling above one", config: &Config{Enabled: true, Tracing: &TracingConfig{Enabled: true, Sampling: 1.5}}, wantErr: true},
		{name: "negative sampling", config: &Config{Enabled: true, Tracing: &TracingConfig{Enabled: true, Sampling: -0.1}}, wantErr: true},
		{name: "tracing disabled ignores sampling", config: &Config{Enabled: true, Tracing: &TracingConfig{Sampling: 7}}},
		{name: "valid metrics interval", config: &Config{Enabled: true, Metrics: &MetricsConfig{Enabled: true, Interval: "15s"}}},
		{name: "invalid metrics interval", config: &Config{Enabled: true, Metrics: &MetricsConfig{Enabled: true, Interval: "soon"}}, wantErr: true},
		{name: "zero metrics interval", config: &Config{Enabled: true, Metrics: &MetricsConfig{Enabled: true, Interval: "0s"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	var nilCfg *Config
	assert.False(t, nilCfg.tracingEnabled())
	assert.False(t, nilCfg.metricsEnabled())

	cfg := &Config{Enabled: true, Tracing: &TracingConfig{Enabled: true}}
	assert.True(t, cfg.tracingEnabled())
	assert.False(t, cfg.metricsEnabled())

	cfg.Enabled = false
	assert.False(t, cfg.tracingEnabled())
}
