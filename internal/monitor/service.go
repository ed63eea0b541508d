package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/pwnwatch/internal/domain"
	"github.com/samvad-hq/pwnwatch/internal/logger"
	"github.com/samvad-hq/pwnwatch/pkg/publishers"
	"github.com/samvad-hq/pwnwatch/pkg/watchlist"
)

// Service runs checks across watches and publishes exposures not seen before.
type Service struct {
	registry  watchlist.CheckerRegistry
	enricher  ExposureEnricher
	publisher EventPublisher
	store     Deduper
	log       logger.Logger
}

// Summary counts what a Run did.
type Summary struct {
	Watches   int `json:"watches"`
	Failed    int `json:"failed"`
	Exposures int `json:"exposures"`
	New       int `json:"new"`
	Published int `json:"published"`
}

// NewService wires a monitor. enricher and store may be nil.
func NewService(reg watchlist.CheckerRegistry, pub EventPublisher, log logger.Logger, store Deduper, enricher ExposureEnricher) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		registry:  reg,
		enricher:  enricher,
		publisher: pub,
		store:     store,
		log:       log,
	}
}

// Run checks every enabled watch once, pausing for each watch's request
// delay between lookups. Per-watch failures are logged and joined.
func (s *Service) Run(ctx context.Context, watches []watchlist.Watch) (Summary, error) {
	var sum Summary
	if s == nil || s.registry == nil {
		return sum, fmt.Errorf("monitor service is not initialized")
	}
	if len(watches) == 0 {
		s.log.WarnObj("no enabled watches; nothing to check", "watches_count", 0)
		return sum, nil
	}
	if r, ok := s.enricher.(cacheResetter); ok {
		r.Reset()
	}

	var errs []error
	for i, w := range watches {
		if !w.EnabledValue() {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		sum.Watches++
		res, err := s.runWatch(ctx, w)
		sum.Exposures += res.Exposures
		sum.New += res.New
		sum.Published += res.Published
		if err != nil {
			sum.Failed++
			errs = append(errs, err)
			s.log.ErrorObj("watch check failed", "watch_error", map[string]any{
				"watch_id": w.ID,
				"error":    err.Error(),
			})
		}

		if i < len(watches)-1 && !sleep(ctx, w.RequestDelay()) {
			errs = append(errs, ctx.Err())
			break
		}
	}
	return sum, errors.Join(errs...)
}

func (s *Service) runWatch(ctx context.Context, w watchlist.Watch) (Summary, error) {
	var res Summary
	checker, err := s.registry.CheckerFor(w)
	if err != nil {
		return res, fmt.Errorf("resolve checker for watch %s: %w", w.ID, err)
	}

	exposures, err := checker.Check(ctx, w)
	if err != nil {
		return res, fmt.Errorf("check watch %s: %w", w.ID, err)
	}
	res.Exposures = len(exposures)

	fresh, err := s.unseen(ctx, exposures)
	if err != nil {
		return res, fmt.Errorf("dedupe watch %s: %w", w.ID, err)
	}
	res.New = len(fresh)

	if s.enricher != nil && len(fresh) > 0 {
		fresh = s.enricher.Enrich(ctx, w, fresh)
	}

	var errs []error
	for _, exp := range fresh {
		published, err := s.publish(ctx, w, exp)
		if published {
			res.Published++
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	s.log.InfoObj("watch check completed", "watch_result", map[string]any{
		"watch_id":      w.ID,
		"type":          w.Type,
		"exposures":     res.Exposures,
		"new_exposures": res.New,
		"published":     res.Published,
	})
	return res, errors.Join(errs...)
}

// unseen drops exposures the store already knows about.
func (s *Service) unseen(ctx context.Context, exposures []domain.Exposure) ([]domain.Exposure, error) {
	if s.store == nil {
		return exposures, nil
	}
	out := make([]domain.Exposure, 0, len(exposures))
	for _, exp := range exposures {
		seen, err := s.store.SeenExposure(ctx, exp.ID)
		if err != nil {
			return nil, err
		}
		if !seen {
			out = append(out, exp)
		}
	}
	return out, nil
}

// publish sends one exposure and marks it seen once any sink accepted it.
func (s *Service) publish(ctx context.Context, w watchlist.Watch, exp domain.Exposure) (bool, error) {
	if s.publisher == nil {
		return false, nil
	}
	evt := publishers.NewEvent(w.ID, exp)
	delivered, pubErr := s.publisher.Publish(ctx, evt)
	if pubErr != nil {
		s.log.WarnObj("exposure publish failed", "publish_error", map[string]any{
			"watch_id":    w.ID,
			"exposure_id": exp.ID,
			"delivered":   delivered,
			"error":       pubErr.Error(),
		})
	}
	if delivered == 0 {
		return false, pubErr
	}

	if s.store != nil {
		if err := s.store.MarkExposure(ctx, exp.ID); err != nil {
			return true, errors.Join(pubErr, fmt.Errorf("mark exposure %s: %w", exp.ID, err))
		}
	}
	return true, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
