package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/pwnwatch/internal/domain"
	"github.com/samvad-hq/pwnwatch/pkg/hibp"
	"github.com/samvad-hq/pwnwatch/pkg/watchlist"
)

type fakeLookup struct {
	breaches map[string]*hibp.Breach
	err      error
	calls    int
}

func (f *fakeLookup) Breach(_ context.Context, name string) (*hibp.Breach, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.breaches[name], nil
}

const adobeDescription = `In October 2013, 153 million <a href="https://www.adobe.com" target="_blank">Adobe</a>
accounts were breached.`

func TestEnrichCompletesTruncatedBreaches(t *testing.T) {
	lookup := &fakeLookup{breaches: map[string]*hibp.Breach{
		"Adobe": {Name: "Adobe", Title: "Adobe", Domain: "adobe.com", BreachDate: "2013-10-04", PwnCount: 152445165, Description: adobeDescription, DataClasses: []string{"Passwords"}},
	}}
	e := NewBreachEnricher(lookup, nil)
	w := watchlist.Watch{ID: "ops"}
	in := []domain.Exposure{breachExposure("ops@example.com", "Adobe"), breachExposure("other@example.com", "Adobe")}

	out := e.Enrich(context.Background(), w, in)
	if len(out) != 2 {
		t.Fatalf("expected 2 exposures, got %d", len(out))
	}
	got := out[0]
	if !got.Complete || got.Domain != "adobe.com" || got.PwnCount != 152445165 {
		t.Fatalf("expected completed breach, got %+v", got)
	}
	if got.ID != in[0].ID || got.Account != "ops@example.com" {
		t.Fatalf("identity changed during enrichment: %+v", got)
	}
	if got.Description != "In October 2013, 153 million Adobe accounts were breached." {
		t.Fatalf("unexpected plain description %q", got.Description)
	}
	if got.ReferenceURL != "https://www.adobe.com" {
		t.Fatalf("unexpected reference url %q", got.ReferenceURL)
	}
	if lookup.calls != 1 {
		t.Fatalf("expected cached lookup, got %d calls", lookup.calls)
	}
	if in[0].Complete {
		t.Fatalf("input slice was modified")
	}
}

func TestEnrichKeepsExposureOnLookupFailure(t *testing.T) {
	e := NewBreachEnricher(&fakeLookup{err: errors.New("timeout")}, nil)
	in := []domain.Exposure{breachExposure("a", "Gawker")}

	out := e.Enrich(context.Background(), watchlist.Watch{ID: "a"}, in)
	if out[0].Complete || out[0].Name != "Gawker" {
		t.Fatalf("expected exposure to be left as is, got %+v", out[0])
	}
}

func TestEnrichMissingBreachAndPastes(t *testing.T) {
	lookup := &fakeLookup{breaches: map[string]*hibp.Breach{}}
	e := NewBreachEnricher(lookup, nil)
	paste := domain.Exposure{Kind: domain.ExposurePaste, Name: "8Q0BvKD8", Complete: true}

	out := e.Enrich(context.Background(), watchlist.Watch{ID: "a"}, []domain.Exposure{breachExposure("a", "Retired"), paste})
	if out[0].Complete {
		t.Fatalf("missing breach should stay incomplete")
	}
	if out[1].Name != paste.Name || out[1].Kind != domain.ExposurePaste || out[1].Description != "" {
		t.Fatalf("paste should pass through untouched")
	}
	if lookup.calls != 1 {
		t.Fatalf("expected one lookup, got %d", lookup.calls)
	}
}

func TestDescribeSkipsRelativeLinks(t *testing.T) {
	text, ref, err := describe(`<p>See <a href="/PwnedWebsites">list</a> and <a href="http://example.com">site</a></p>`)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if text != "See list and site" || ref != "http://example.com" {
		t.Fatalf("unexpected result text=%q ref=%q", text, ref)
	}
}

func TestEnrichDoesNotRememberMissingBreach(t *testing.T) {
	lookup := &fakeLookup{breaches: map[string]*hibp.Breach{}}
	e := NewBreachEnricher(lookup, nil)
	in := []domain.Exposure{breachExposure("a", "Fresh")}

	if out := e.Enrich(context.Background(), watchlist.Watch{ID: "a"}, in); out[0].Complete {
		t.Fatalf("expected incomplete exposure while breach is unknown")
	}
	lookup.breaches["Fresh"] = &hibp.Breach{Name: "Fresh", Title: "Fresh", BreachDate: "2024-01-01"}

	out := e.Enrich(context.Background(), watchlist.Watch{ID: "a"}, in)
	if !out[0].Complete || out[0].Title != "Fresh" {
		t.Fatalf("expected breach to be completed once listed, got %+v", out[0])
	}
	if lookup.calls != 2 {
		t.Fatalf("expected the missing breach to be looked up again, got %d calls", lookup.calls)
	}
}
