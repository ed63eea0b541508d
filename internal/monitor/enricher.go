package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/pwnwatch/internal/domain"
	"github.com/samvad-hq/pwnwatch/internal/logger"
	"github.com/samvad-hq/pwnwatch/pkg/hibp"
	"github.com/samvad-hq/pwnwatch/pkg/watchlist"
)

// BreachEnricher completes truncated breach exposures with a per-name
// lookup and turns breach descriptions from HTML into plain text.
type BreachEnricher struct {
	lookup BreachLookup
	log    logger.Logger

	mu    sync.Mutex
	cache map[string]*hibp.Breach
}

// NewBreachEnricher builds an enricher. A nil lookup skips completion.
func NewBreachEnricher(lookup BreachLookup, log logger.Logger) *BreachEnricher {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &BreachEnricher{lookup: lookup, log: log, cache: make(map[string]*hibp.Breach)}
}

// Enrich returns a copy of exposures with breach details filled in. Lookup
// failures leave the exposure as it was.
func (e *BreachEnricher) Enrich(ctx context.Context, w watchlist.Watch, exposures []domain.Exposure) []domain.Exposure {
	out := make([]domain.Exposure, len(exposures))
	copy(out, exposures)

	for i, exp := range out {
		if exp.Kind != domain.ExposureBreach {
			continue
		}
		if !exp.Complete && e.lookup != nil {
			full, err := e.breach(ctx, exp.Name)
			switch {
			case err != nil:
				e.log.WarnObj("breach lookup failed", "enrich_error", map[string]any{
					"watch_id": w.ID,
					"breach":   exp.Name,
					"error":    err.Error(),
				})
			case full != nil:
				exp = completeExposure(exp, *full)
			}
		}

		if exp.Description != "" {
			text, ref, err := describe(exp.Description)
			if err == nil {
				exp.Description = text
				if exp.ReferenceURL == "" {
					exp.ReferenceURL = ref
				}
			}
		}
		out[i] = exp
	}
	return out
}

// Reset drops cached breaches. Service.Run calls it at the start of a pass.
func (e *BreachEnricher) Reset() {
	e.mu.Lock()
	e.cache = make(map[string]*hibp.Breach)
	e.mu.Unlock()
}

// breach returns the named breach. Found breaches are cached until the next
// Reset; a missing breach is looked up again on every call.
func (e *BreachEnricher) breach(ctx context.Context, name string) (*hibp.Breach, error) {
	e.mu.Lock()
	cached, ok := e.cache[name]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	b, err := e.lookup.Breach(ctx, name)
	if err != nil || b == nil {
		return nil, err
	}
	e.mu.Lock()
	e.cache[name] = b
	e.mu.Unlock()
	return b, nil
}

func completeExposure(exp domain.Exposure, b hibp.Breach) domain.Exposure {
	full := watchlist.ExposureFromBreach(exp.Account, b)
	full.ID = exp.ID
	full.Complete = true
	return full
}

// describe flattens an HTML breach description and returns the first link.
func describe(html string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("parse description: %w", err)
	}

	var ref string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			ref = href
			return false
		}
		return true
	})

	text := strings.Join(strings.Fields(doc.Text()), " ")
	return text, ref, nil
}
