package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
)

func TestRestyClientGetSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "pwnwatch-test" {
			t.Fatalf("expected user agent header, got %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"User-Agent": "pwnwatch-test"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if string(resp.Body()) != "short and stout" {
		t.Fatalf("unexpected body %q", resp.Body())
	}
}

func TestRestyClientBeforeRequestErrorIsReturnedUnchanged(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	boom := errors.New("Set sail for fail!")
	client := NewRestyClientWithConfig(Config{
		Timeout: time.Second,
		BeforeRequest: []resty.RequestMiddleware{
			func(*resty.Client, *resty.Request) error { return boom },
		},
	})

	resp, err := client.Get(context.Background(), srv.URL, nil)
	if resp != nil {
		t.Fatalf("expected nil response, got %#v", resp)
	}
	if !errors.Is(err, boom) || err.Error() != boom.Error() {
		t.Fatalf("expected original error, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("request should not have been dispatched")
	}
}

func TestRestyClientAfterResponseRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var seen int
	client := NewRestyClientWithConfig(Config{
		AfterResponse: []resty.ResponseMiddleware{
			func(_ *resty.Client, resp *resty.Response) error {
				seen = resp.StatusCode()
				return nil
			},
		},
	})
	if _, err := client.Get(context.Background(), srv.URL, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if seen != http.StatusNotFound {
		t.Fatalf("after-response hook saw %d", seen)
	}
}
