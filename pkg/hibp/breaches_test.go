package hibp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBreachedAccount(t *testing.T) {
	srv := newStubServer(t)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	cases := []struct {
		name    string
		account string
		opts    BreachedAccountOptions
		wantNil bool
	}{
		{"breached, no options", accountBreached, BreachedAccountOptions{}, false},
		{"breached, truncated", accountBreached, BreachedAccountOptions{Truncate: true}, false},
		{"breached, domain", accountBreached, BreachedAccountOptions{Domain: domainFilter}, false},
		{"breached, domain and truncated", accountBreached, BreachedAccountOptions{Domain: domainFilter, Truncate: true}, false},
		{"clean, no options", accountClean, BreachedAccountOptions{}, true},
		{"clean, truncated", accountClean, BreachedAccountOptions{Truncate: true}, true},
		{"clean, domain", accountClean, BreachedAccountOptions{Domain: domainFilter}, true},
		{"clean, domain and truncated", accountClean, BreachedAccountOptions{Domain: domainFilter, Truncate: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			breaches, err := c.BreachedAccount(context.Background(), tc.account, tc.opts)
			if err != nil {
				t.Fatalf("BreachedAccount: %v", err)
			}
			if tc.wantNil {
				if breaches != nil {
					t.Fatalf("expected nil for clean account, got %#v", breaches)
				}
				return
			}
			if len(breaches) != 1 || breaches[0].Name != "Adobe" || breaches[0].PwnCount != 152445165 {
				t.Fatalf("unexpected breaches %#v", breaches)
			}
		})
	}
}

func TestBreachedAccountQueryParameters(t *testing.T) {
	cases := []struct {
		opts BreachedAccountOptions
		want string
	}{
		{BreachedAccountOptions{}, ""},
		{BreachedAccountOptions{Truncate: true}, "truncateResponse=true"},
		{BreachedAccountOptions{Domain: domainFilter}, "domain=foo.bar"},
		{BreachedAccountOptions{Domain: domainFilter, Truncate: true}, "domain=foo.bar&truncateResponse=true"},
	}
	for _, tc := range cases {
		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`[]`))
		}))
		c := newTestClient(t, srv.URL)
		if _, err := c.BreachedAccount(context.Background(), accountBreached, tc.opts); err != nil {
			t.Fatalf("BreachedAccount: %v", err)
		}
		srv.Close()
		if gotQuery != tc.want {
			t.Errorf("opts %+v: query = %q, want %q", tc.opts, gotQuery, tc.want)
		}
	}
}

func TestBreachedAccountEscapesAccount(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.BreachedAccount(context.Background(), "a/b c", BreachedAccountOptions{}); err != nil {
		t.Fatalf("BreachedAccount: %v", err)
	}
	if gotPath != "/breachedaccount/a%2Fb%20c" {
		t.Fatalf("unexpected escaped path %q", gotPath)
	}
}

func TestBreachedAccountForbidden(t *testing.T) {
	srv := newStubServer(t)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	breaches, err := c.BreachedAccount(context.Background(), invalidHeader, BreachedAccountOptions{})
	if breaches != nil {
		t.Fatalf("expected no result, got %#v", breaches)
	}
	if err == nil || !strings.HasPrefix(err.Error(), "Forbidden") {
		t.Fatalf("expected error starting with Forbidden, got %v", err)
	}
	if !IsForbidden(err) {
		t.Fatalf("expected errors.Is(err, ErrForbidden)")
	}
}

func TestBreachedAccountEmptyAccount(t *testing.T) {
	c := newTestClient(t, "https://example.com", WithHTTPClient(errTransport{}))
	_, err := c.BreachedAccount(context.Background(), " ", BreachedAccountOptions{})
	if !IsBadRequest(err) || !strings.HasPrefix(err.Error(), "Bad request") {
		t.Fatalf("expected bad request error, got %v", err)
	}
}

func TestBreachEmptyName(t *testing.T) {
	c := newTestClient(t, "https://example.com", WithHTTPClient(errTransport{}))
	got, err := c.Breach(context.Background(), "   ")
	if got != nil || !IsBadRequest(err) {
		t.Fatalf("expected bad request error, got %v, %v", got, err)
	}
	if err.Error() != "Bad request: breach name must not be empty" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestBreaches(t *testing.T) {
	srv := newStubServer(t)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	for _, domain := range []string{"", domainFilter} {
		breaches, err := c.Breaches(context.Background(), domain)
		if err != nil {
			t.Fatalf("Breaches(%q): %v", domain, err)
		}
		if breaches == nil || len(breaches) != 0 {
			t.Fatalf("Breaches(%q): expected empty non-nil slice, got %#v", domain, breaches)
		}
	}
}

func TestBreachesDomainQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(breachJSON))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	breaches, err := c.Breaches(context.Background(), "adobe.com")
	if err != nil {
		t.Fatalf("Breaches: %v", err)
	}
	if gotQuery != "domain=adobe.com" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(breaches) != 1 || breaches[0].Domain != "adobe.com" {
		t.Fatalf("unexpected breaches %#v", breaches)
	}
}

func TestBreachesNotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	breaches, err := c.Breaches(context.Background(), "")
	if err != nil || breaches == nil {
		t.Fatalf("expected empty slice, got %#v err=%v", breaches, err)
	}
}

func TestBreach(t *testing.T) {
	srv := newStubServer(t)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	found, err := c.Breach(context.Background(), breachFound)
	if err != nil {
		t.Fatalf("Breach(found): %v", err)
	}
	if found == nil {
		t.Fatalf("expected breach for existing name")
	}

	missing, err := c.Breach(context.Background(), breachNotFound)
	if err != nil {
		t.Fatalf("Breach(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing breach, got %#v", missing)
	}
}

func TestBreachAdobeStub(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/breach/adobe" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	got, err := c.Breach(context.Background(), "adobe")
	if err != nil || got == nil {
		t.Fatalf("expected empty breach, got %#v err=%v", got, err)
	}
	if got.Name != "" || !got.Truncated() {
		t.Fatalf("expected zero-valued breach, got %#v", got)
	}

	status = http.StatusNotFound
	got, err = c.Breach(context.Background(), "adobe")
	if err != nil || got != nil {
		t.Fatalf("expected nil on 404, got %#v err=%v", got, err)
	}
}

func TestDataClasses(t *testing.T) {
	srv := newStubServer(t)
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	classes, err := c.DataClasses(context.Background())
	if err != nil {
		t.Fatalf("DataClasses: %v", err)
	}
	if classes == nil || len(classes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", classes)
	}
}

func TestDataClassesDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["Email addresses","Passwords"]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	classes, err := c.DataClasses(context.Background())
	if err != nil {
		t.Fatalf("DataClasses: %v", err)
	}
	if len(classes) != 2 || classes[1] != "Passwords" {
		t.Fatalf("unexpected classes %#v", classes)
	}
}
