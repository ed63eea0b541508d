package hibp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/samvad-hq/pwnwatch/pkg/httpclient"
)

const (
	// DefaultBaseURL is the public v3 API root.
	DefaultBaseURL = "https://haveibeenpwned.com/api/v3"
	// DefaultUserAgent is sent when no WithUserAgent option is given.
	DefaultUserAgent = "pwnwatch"

	defaultTimeout = 15 * time.Second
	apiKeyHeader   = "hibp-api-key"
)

// Client issues requests against a single API root. It holds no mutable
// state after New returns and is safe for concurrent use.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	timeout   time.Duration
	http      httpclient.Client
	log       Logger
}

// New constructs a Client. Without options it targets DefaultBaseURL using
// a resty transport with a 15 second timeout.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   defaultTimeout,
		log:       noopLogger{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(c.timeout)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) headers() map[string]string {
	h := map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "application/json",
	}
	if c.apiKey != "" {
		h[apiKeyHeader] = c.apiKey
	}
	return h
}

// get performs one GET and decodes a 2xx body into out. found is false when
// the API answered 404. Transport errors are returned unchanged.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) (bool, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	start := time.Now()
	resp, err := c.http.Get(ctx, target, c.headers())
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, outcomeTransport).Inc()
		return false, err
	}
	elapsed := time.Since(start)
	requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())

	status := resp.StatusCode()
	c.log.DebugObj("hibp request completed", "hibp_request", map[string]any{
		"endpoint":   endpoint,
		"status":     status,
		"elapsed_ms": elapsed.Milliseconds(),
	})

	switch {
	case status == http.StatusNotFound:
		requestsTotal.WithLabelValues(endpoint, outcomeNotFound).Inc()
		return false, nil
	case status >= 200 && status < 300:
		body := bytes.TrimSpace(resp.Body())
		if len(body) > 0 {
			if err := json.Unmarshal(body, out); err != nil {
				requestsTotal.WithLabelValues(endpoint, outcomeDecode).Inc()
				return false, fmt.Errorf("decode %s response: %w", endpoint, err)
			}
		}
		requestsTotal.WithLabelValues(endpoint, outcomeOK).Inc()
		return true, nil
	default:
		apiErr := newStatusError(status, resp.Body())
		requestsTotal.WithLabelValues(endpoint, apiErr.Kind.String()).Inc()
		return false, apiErr
	}
}

func emptyIdentifierError(what string) *Error {
	return &Error{
		Kind:    KindBadRequest,
		Message: fmt.Sprintf("Bad request: %s must not be empty", what),
	}
}
