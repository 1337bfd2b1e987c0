package sources

import (
	"fmt"

	"github.com/lateral-entry-portal/portal/internal/config"
	"github.com/lateral-entry-portal/portal/internal/httpclient"
)

// NewStaticSource creates the static source described by cfg.
// client is only used for http sources; nil selects a default client.
func NewStaticSource(cfg *config.StaticConfig, client httpclient.Client) (StaticSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("static configuration cannot be nil")
	}

	switch cfg.GetType() {
	case config.StaticTypeFile:
		return NewFileStaticSource(cfg.File.Dir), nil
	case config.StaticTypeHTTP:
		return NewHTTPStaticSource(cfg.HTTP.BaseURL, client)
	default:
		return nil, fmt.Errorf("no static source configured")
	}
}
