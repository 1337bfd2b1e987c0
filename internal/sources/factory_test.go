package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lateral-entry-portal/portal/internal/config"
)

func TestNewStaticSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      *config.StaticConfig
		wantType any
		wantErr  bool
	}{
		{
			name:     "file source",
			cfg:      &config.StaticConfig{File: &config.FileConfig{Dir: "./data"}},
			wantType: &fileStaticSource{},
		},
		{
			name:     "http source",
			cfg:      &config.StaticConfig{HTTP: &config.HTTPConfig{BaseURL: "https://example.org/data/"}},
			wantType: &httpStaticSource{},
		},
		{name: "empty config", cfg: &config.StaticConfig{}, wantErr: true},
		{name: "nil config", cfg: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			source, err := NewStaticSource(tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, source)
		})
	}
}
