package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/pwnwatch/internal/config"
	"github.com/samvad-hq/pwnwatch/internal/logger"
	"github.com/samvad-hq/pwnwatch/internal/monitor"
	"github.com/samvad-hq/pwnwatch/internal/storage"
	"github.com/samvad-hq/pwnwatch/pkg/hibp"
	"github.com/samvad-hq/pwnwatch/pkg/publishers"
	"github.com/samvad-hq/pwnwatch/pkg/watchlist"
)

// Runtime holds everything a scan needs: the API client, the watchlist,
// the publishers and the seen-exposure store.
type Runtime struct {
	cfg      *config.Config
	client   *hibp.Client
	watches  *watchlist.Registry
	fanout   *publishers.Fanout
	store    storage.Store
	service  *monitor.Service
	interval time.Duration
	log      logger.Logger
}

// NewHIBPClient builds an API client from config.
func NewHIBPClient(cfg *config.Config, log logger.Logger) (*hibp.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	opts := []hibp.Option{
		hibp.WithBaseURL(cfg.HIBPBaseURL),
		hibp.WithUserAgent(cfg.HIBPUserAgent),
		hibp.WithTimeout(cfg.HIBPTimeout),
		hibp.WithAPIKey(cfg.HIBPAPIKey),
	}
	if log != nil {
		opts = append(opts, hibp.WithLogger(log))
	}
	return hibp.New(opts...)
}

// Build wires the monitor runtime from config files.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := NewHIBPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init hibp client: %w", err)
	}

	watches, err := watchlist.LoadRegistry(cfg.WatchlistFile)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	ids := make([]string, 0, len(watches.All()))
	for _, w := range watches.All() {
		ids = append(ids, w.ID)
	}
	log.InfoObj("watchlist loaded", "watchlist_meta", map[string]any{
		"count":   len(ids),
		"enabled": len(watches.Enabled()),
		"ids":     ids,
	})

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(ctx, cfg.StorageType, storage.Options{
		Path:            cfg.BBoltPath,
		RedisURL:        cfg.RedisURL,
		TTL:             cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("init storage: %w", err), fanout.Close())
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	service := monitor.NewService(
		watchlist.DefaultCheckerRegistry(client),
		fanout,
		log,
		store,
		monitor.NewBreachEnricher(client, log),
	)

	return &Runtime{
		cfg:      cfg,
		client:   client,
		watches:  watches,
		fanout:   fanout,
		store:    store,
		service:  service,
		interval: cfg.CheckInterval,
		log:      log,
	}, nil
}

func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(cfg.PublishersFile) == "" {
		log.WarnObj("no publishers file configured; exposures will only be logged", "publishers_file", "")
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers enabled in %s", cfg.PublishersFile)
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	summaries := make([]map[string]string, 0, len(enabled))
	for _, p := range enabled {
		summaries = append(summaries, map[string]string{"id": p.ID, "type": p.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Client returns the API client the runtime checks with.
func (r *Runtime) Client() *hibp.Client { return r.client }

// Scan runs a single pass over the enabled watches.
func (r *Runtime) Scan(ctx context.Context) (monitor.Summary, error) {
	if r == nil || r.service == nil {
		return monitor.Summary{}, fmt.Errorf("runtime is not initialized")
	}
	watches := r.watches.Enabled()
	start := time.Now()
	r.log.InfoObj("scan started", "scan_meta", map[string]any{
		"watches_count": len(watches),
		"started_at":    start.UTC(),
	})

	sum, err := r.service.Run(ctx, watches)
	r.log.InfoObj("scan completed", "scan_meta", map[string]any{
		"summary":    sum,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return sum, err
}

// Monitor scans immediately and then every check interval until ctx ends.
func (r *Runtime) Monitor(ctx context.Context) error {
	if r == nil || r.service == nil {
		return fmt.Errorf("runtime is not initialized")
	}
	if len(r.watches.Enabled()) == 0 {
		r.log.WarnObj("no watches enabled; monitor idle", "watchlist_file", r.cfg.WatchlistFile)
		<-ctx.Done()
		return nil
	}

	r.log.InfoObj("monitor loop starting", "monitor_state", map[string]any{
		"watches_count":    len(r.watches.Enabled()),
		"publishers_count": r.fanout.Size(),
		"check_interval":   r.interval.String(),
	})

	if _, err := r.Scan(ctx); err != nil && ctx.Err() == nil {
		r.log.ErrorObj("initial scan failed", "error", err.Error())
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoObj("monitor loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if _, err := r.Scan(ctx); err != nil && ctx.Err() == nil {
				r.log.ErrorObj("scheduled scan failed", "error", err.Error())
			}
		}
	}
}

// Close releases publishers and the store.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	if err := r.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}
