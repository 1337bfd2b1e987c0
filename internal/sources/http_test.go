package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lateral-entry-portal/portal/internal/httpclient"
	"github.com/lateral-entry-portal/portal/internal/httpclient/mocks"
)

func TestHTTPStaticSource_Fetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lateral-entry/data/batches.json":
			_, _ = w.Write([]byte(`[{"batch_year":2019,"count":9}]`))
		case "/lateral-entry/data/stats.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	server.Config.SetKeepAlivesEnabled(false)
	t.Cleanup(server.Close)

	source, err := NewHTTPStaticSource(server.URL+"/lateral-entry/data/", httpclient.NewDefaultClient(0))
	require.NoError(t, err)

	t.Run("downloads document", func(t *testing.T) {
		t.Parallel()

		data, err := source.Fetch(context.Background(), DocumentBatches)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"batch_year":2019,"count":9}]`, string(data))
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		t.Parallel()

		_, err := source.Fetch(context.Background(), DocumentEntrants)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("server error is not a missing document", func(t *testing.T) {
		t.Parallel()

		_, err := source.Fetch(context.Background(), DocumentStats)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDocumentNotFound)
		assert.Equal(t, http.StatusInternalServerError, httpclient.StatusCode(err))
	})
}

func TestHTTPStaticSource_Location(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	source, err := NewHTTPStaticSource("https://example.org/lateral-entry/data", client)
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/lateral-entry/data/stats.json", source.Location(DocumentStats))

	client.EXPECT().
		Get(gomock.Any(), "https://example.org/lateral-entry/data/entrants.json").
		Return([]byte(`[]`), nil)

	data, err := source.Fetch(context.Background(), DocumentEntrants)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
}

func TestNewHTTPStaticSource_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := NewHTTPStaticSource("://bad", nil)
	assert.Error(t, err)
}
