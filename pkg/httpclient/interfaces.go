package httpclient

import (
	"context"
	"net/url"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts GET calls against the telemetry service so callers can
// inject fakes or different transports.
type Client interface {
	Get(ctx context.Context, rawURL string, query url.Values, headers map[string]string) (Response, error)
}
