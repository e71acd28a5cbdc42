package httpclient

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent is sent when the caller does not configure one.
const DefaultUserAgent = "ana-telemetry/1.0"

// Options configures the resty-backed client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient from the given options.
func NewRestyClient(opts Options) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(opts)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(Options{Timeout: timeout})
}

// newRestyBaseClient creates a resty.Client with timeout and user agent applied.
// Retries stay disabled: every call is a single round trip.
func newRestyBaseClient(opts Options) *resty.Client {
	c := resty.New()
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = DefaultUserAgent
	}
	c.SetHeader("User-Agent", ua)
	c.SetRetryCount(0)
	return c
}

// Get performs an HTTP GET with the query values encoded onto rawURL.
func (r *RestyClient) Get(ctx context.Context, rawURL string, query url.Values, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(rawURL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
