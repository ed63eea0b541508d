package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Config tunes the resty transport.
type Config struct {
	Timeout time.Duration
	// BeforeRequest runs in order before each request is dispatched. An error
	// aborts the request and is returned to the caller as-is.
	BeforeRequest []resty.RequestMiddleware
	// AfterResponse runs in order after each response is received.
	AfterResponse []resty.ResponseMiddleware
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return NewRestyClientWithConfig(Config{Timeout: timeout})
}

// NewRestyClientWithConfig creates a RestyClient with middleware hooks installed.
func NewRestyClientWithConfig(cfg Config) *RestyClient {
	c := newRestyBaseClient(cfg.Timeout)
	for _, m := range cfg.BeforeRequest {
		if m != nil {
			c.OnBeforeRequest(m)
		}
	}
	for _, m := range cfg.AfterResponse {
		if m != nil {
			c.OnAfterResponse(m)
		}
	}
	return &RestyClient{client: c}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := resty.New()
	c.SetTimeout(timeout)
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
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
