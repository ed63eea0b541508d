package monitor

import (
	"context"

	"github.com/samvad-hq/pwnwatch/internal/domain"
	"github.com/samvad-hq/pwnwatch/pkg/hibp"
	"github.com/samvad-hq/pwnwatch/pkg/publishers"
	"github.com/samvad-hq/pwnwatch/pkg/watchlist"
)

// ExposureEnricher fills in details the checkers could not provide.
type ExposureEnricher interface {
	Enrich(ctx context.Context, w watchlist.Watch, exposures []domain.Exposure) []domain.Exposure
}

// cacheResetter is implemented by enrichers that cache lookups for one pass.
type cacheResetter interface {
	Reset()
}

// EventPublisher delivers events and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which exposures were already published.
type Deduper interface {
	SeenExposure(ctx context.Context, id string) (bool, error)
	MarkExposure(ctx context.Context, id string) error
}

// BreachLookup fetches a single breach by name.
type BreachLookup interface {
	Breach(ctx context.Context, name string) (*hibp.Breach, error)
}
