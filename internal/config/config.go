// Package config provides configuration loading and management for the portal client.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/lateral-entry-portal/portal/internal/telemetry"
)

const (
	// StaticTypeFile serves snapshots from a local directory
	StaticTypeFile = "file"

	// StaticTypeHTTP serves snapshots from a remote base URL
	StaticTypeHTTP = "http"
)

const (
	// EnvPrefix is the prefix for environment variables read through viper
	EnvPrefix = "PORTAL"

	// DefaultStaticDir is used when no static source is configured
	DefaultStaticDir = "./data"

	// xdgConfigFile is looked up under the XDG config directories when no
	// explicit path is given
	xdgConfigFile = "lateral-entry-portal/config.yaml"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path       string
	skipSearch bool
	overrides  []func(*Config)
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// WithNoConfigFile skips the XDG config file lookup so only defaults and
// overrides apply
func WithNoConfigFile() Option {
	return func(cfg *loaderConfig) error {
		cfg.skipSearch = true
		return nil
	}
}

// WithAPIEndpoint overrides the live API base URL. An empty endpoint is ignored.
func WithAPIEndpoint(endpoint string) Option {
	return withOverride(endpoint != "", func(c *Config) {
		if c.API == nil {
			c.API = &APIConfig{}
		}
		c.API.Endpoint = endpoint
	})
}

// WithStaticDir serves static snapshots from a local directory. An empty dir is ignored.
func WithStaticDir(dir string) Option {
	return withOverride(dir != "", func(c *Config) {
		c.Static = StaticConfig{File: &FileConfig{Dir: dir}}
	})
}

// WithStaticURL serves static snapshots from a base URL. An empty URL is ignored.
func WithStaticURL(baseURL string) Option {
	return withOverride(baseURL != "", func(c *Config) {
		c.Static = StaticConfig{HTTP: &HTTPConfig{BaseURL: baseURL}}
	})
}

// WithTimeout overrides the HTTP timeout used for both the API and remote snapshots.
// An empty value is ignored.
func WithTimeout(timeout string) Option {
	return withOverride(timeout != "", func(c *Config) {
		c.Timeout = timeout
	})
}

func withOverride(enabled bool, apply func(*Config)) Option {
	return func(cfg *loaderConfig) error {
		if enabled {
			cfg.overrides = append(cfg.overrides, apply)
		}
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// API is the live portal API. When nil or empty every request is
	// served from static snapshots.
	API *APIConfig `yaml:"api,omitempty"`

	// Static locates the pre-generated snapshot documents
	Static StaticConfig `yaml:"static"`

	// Timeout bounds every HTTP request (e.g., "10s")
	Timeout string `yaml:"timeout,omitempty"`

	// Export configures snapshot generation
	Export *ExportConfig `yaml:"export,omitempty"`

	// Telemetry configures OpenTelemetry tracing and metrics
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// APIConfig defines the live portal API
type APIConfig struct {
	// Endpoint is the API base URL; logical endpoints are appended to it.
	// Example: "http://localhost:5000/api"
	Endpoint string `yaml:"endpoint"`
}

// StaticConfig defines where the static snapshots live (only one should be set)
type StaticConfig struct {
	File *FileConfig `yaml:"file,omitempty"`
	HTTP *HTTPConfig `yaml:"http,omitempty"`
}

// FileConfig defines a local snapshot directory
type FileConfig struct {
	// Dir holds stats.json, batches.json and entrants.json
	Dir string `yaml:"dir"`
}

// HTTPConfig defines a remotely hosted snapshot directory
type HTTPConfig struct {
	// BaseURL is the URL of the directory holding the snapshot documents.
	// Example: "https://example.org/lateral-entry/data/"
	BaseURL string `yaml:"baseURL"`
}

// ExportConfig defines snapshot generation settings
type ExportConfig struct {
	// Database is a SQLite file path or a postgres:// connection string
	Database string `yaml:"database"`

	// OutputDir receives the generated documents. Defaults to the static file dir.
	OutputDir string `yaml:"outputDir,omitempty"`
}

// LoadConfig builds the configuration from an optional YAML file and overrides.
// Without WithConfigPath the XDG config directories are searched; when no
// file exists the defaults are used.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	path := loaderCfg.path
	if path == "" && !loaderCfg.skipSearch {
		if found, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
			path = found
		}
	}

	config := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	for _, apply := range loaderCfg.overrides {
		apply(config)
	}

	if config.Static.File == nil && config.Static.HTTP == nil {
		config.Static.File = &FileConfig{Dir: DefaultStaticDir}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// HasAPI reports whether a live API is configured
func (c *Config) HasAPI() bool {
	return c.API != nil && c.API.Endpoint != ""
}

// GetTimeout returns the HTTP timeout, or 0 to use the client default
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	// validated on load
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// GetExportOutputDir returns the export directory, falling back to the static file dir
func (c *Config) GetExportOutputDir() string {
	if c.Export != nil && c.Export.OutputDir != "" {
		return c.Export.OutputDir
	}
	if c.Static.File != nil {
		return c.Static.File.Dir
	}
	return DefaultStaticDir
}

// GetType returns the inferred type of the static config based on which field is present
func (s *StaticConfig) GetType() string {
	if s.File != nil {
		return StaticTypeFile
	}
	if s.HTTP != nil {
		return StaticTypeHTTP
	}
	return ""
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	var errs []error

	if c.API != nil && c.API.Endpoint != "" {
		if err := validateHTTPURL(c.API.Endpoint); err != nil {
			errs = append(errs, fmt.Errorf("api.endpoint: %w", err))
		}
	}

	if err := c.Static.validate(); err != nil {
		errs = append(errs, fmt.Errorf("static: %w", err))
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("timeout must be a valid duration (e.g., '10s'): %w", err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
		}
	}

	if c.Telemetry != nil {
		if err := c.Telemetry.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("telemetry: %w", err))
		}
	}

	return errors.Join(errs...)
}

// validate ensures exactly one snapshot location is configured
func (s *StaticConfig) validate() error {
	if s.File != nil && s.HTTP != nil {
		return fmt.Errorf("only one of file or http may be specified")
	}

	switch {
	case s.File != nil:
		if s.File.Dir == "" {
			return fmt.Errorf("file.dir is required")
		}
	case s.HTTP != nil:
		if s.HTTP.BaseURL == "" {
			return fmt.Errorf("http.baseURL is required")
		}
		if err := validateHTTPURL(s.HTTP.BaseURL); err != nil {
			return fmt.Errorf("http.baseURL: %w", err)
		}
	default:
		return fmt.Errorf("one of file or http must be specified")
	}

	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}
