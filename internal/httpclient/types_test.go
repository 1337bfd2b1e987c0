package httpclient_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lateral-entry-portal/portal/internal/httpclient"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		statusCode    int
		url           string
		message       string
		expectedError string
	}{
		{
			name:          "create HTTPError with all fields",
			statusCode:    404,
			url:           "http://localhost:5000/api/entrants/9",
			message:       "404 Not Found",
			expectedError: "HTTP 404 for URL http://localhost:5000/api/entrants/9: 404 Not Found",
		},
		{
			name:          "handle empty message",
			statusCode:    502,
			url:           "http://localhost:5000/api/stats",
			message:       "",
			expectedError: "HTTP 502 for URL http://localhost:5000/api/stats: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := httpclient.NewHTTPError(tt.statusCode, tt.url, tt.message)
			assert.EqualError(t, err, tt.expectedError)

			var httpErr *httpclient.HTTPError
			assert.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.statusCode, httpErr.StatusCode)
			assert.Equal(t, tt.url, httpErr.URL)
		})
	}
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("fetch failed: %w", httpclient.NewHTTPError(503, "http://x", "down"))
	assert.Equal(t, 503, httpclient.StatusCode(wrapped))
	assert.Equal(t, 0, httpclient.StatusCode(errors.New("connection refused")))
	assert.Equal(t, 0, httpclient.StatusCode(nil))
}
