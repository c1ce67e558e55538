package httpclient

import (
	"net/http"
	"time"
)

// New creates an HTTP client backed by the shared pooled transport.
// The timeout bounds every request made through the client, including
// connection setup and reading the response body.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewTransport(),
		Timeout:   timeout,
	}
}
