package hibp

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/pwnwatch/pkg/httpclient"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithBaseURL points the client at a different API root, e.g. a test stub.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		raw = strings.TrimRight(strings.TrimSpace(raw), "/")
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse base url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url %q must be absolute", raw)
		}
		c.baseURL = raw
		return nil
	}
}

// WithAPIKey sets the hibp-api-key header sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) error {
		c.apiKey = strings.TrimSpace(key)
		return nil
	}
}

// WithUserAgent overrides the User-Agent header. The API rejects requests
// without one, so an empty value is an error.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		ua = strings.TrimSpace(ua)
		if ua == "" {
			return fmt.Errorf("user agent must not be empty")
		}
		c.userAgent = ua
		return nil
	}
}

// WithTimeout bounds each request when the default transport is used.
// It is ignored when WithHTTPClient supplies the transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithLogger attaches a logger for per-request debug traces.
func WithLogger(log Logger) Option {
	return func(c *Client) error {
		if log != nil {
			c.log = log
		}
		return nil
	}
}
