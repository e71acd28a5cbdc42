package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hidro-hq/ana-telemetry/pkg/httpclient"
)

type httpPublisher struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  *resty.Client
	log     Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	return &httpPublisher{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyHTTPClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second),
		log:     ensureLogger(log),
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return TypeHTTP }

// Publish sends the event as a JSON body; any non-2xx status is an error.
func (h *httpPublisher) Publish(ctx context.Context, evt Event) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeaders(h.headers).
		SetHeader("Content-Type", "application/json").
		SetBody(evt)

	resp, err := req.Execute(h.method, h.url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), readBodySnippet(resp.Body()))
	}
	h.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id": h.id,
		"status":       resp.StatusCode(),
	})
	return nil
}

func readBodySnippet(body []byte) string {
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
