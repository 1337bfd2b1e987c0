package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lateral-entry-portal/portal/internal/httpclient"
)

// httpStaticSource reads documents published under a base URL
type httpStaticSource struct {
	baseURL    *url.URL
	httpClient httpclient.Client
}

// NewHTTPStaticSource creates a static source over a base URL
func NewHTTPStaticSource(baseURL string, client httpclient.Client) (StaticSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid static base URL %q: %w", baseURL, err)
	}
	if client == nil {
		client = httpclient.NewDefaultClient(0)
	}

	return &httpStaticSource{
		baseURL:    u,
		httpClient: client,
	}, nil
}

// Fetch downloads the document
func (s *httpStaticSource) Fetch(ctx context.Context, doc Document) ([]byte, error) {
	if !doc.Valid() {
		return nil, fmt.Errorf("unknown static document %q", doc)
	}

	location := s.Location(doc)
	data, err := s.httpClient.Get(ctx, location)
	if err != nil {
		if httpclient.StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, location)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
	}

	return data, nil
}

// Location returns the document's URL
func (s *httpStaticSource) Location(doc Document) string {
	return s.baseURL.JoinPath(string(doc)).String()
}
