package httpclient

import "context"

// Response exposes what API clients branch on: the status and the raw body.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client issues GET requests. Implementations return dial, timeout and
// middleware failures as the error and never as a Response.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
