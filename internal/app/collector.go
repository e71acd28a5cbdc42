package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hidro-hq/ana-telemetry/internal/collector"
	"github.com/hidro-hq/ana-telemetry/internal/config"
	"github.com/hidro-hq/ana-telemetry/internal/logger"
	"github.com/hidro-hq/ana-telemetry/internal/storage"
	"github.com/hidro-hq/ana-telemetry/pkg/ana"
	"github.com/hidro-hq/ana-telemetry/pkg/publishers"
	"github.com/hidro-hq/ana-telemetry/pkg/watchlist"
)

// Collector is the telemetry collector runtime. It owns the poll loop, the
// publisher fanout and the dedup store.
type Collector struct {
	cfg          *config.Config
	stations     *watchlist.Registry
	fanout       *publishers.Fanout
	service      *collector.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// Deps overrides the pieces NewCollector would otherwise build from config.
type Deps struct {
	Fetchers   watchlist.FetcherRegistry
	Publishers []publishers.Publisher
}

// NewCollector builds a collector runtime from config files.
func NewCollector(ctx context.Context, cfg *config.Config, log logger.Logger, deps Deps) (*Collector, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	stations, err := watchlist.LoadRegistry(cfg.WatchlistFile)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	codes := make([]string, 0, len(stations.All()))
	for _, st := range stations.All() {
		codes = append(codes, st.Code+"/"+string(st.Source))
	}
	log.InfoObj("watchlist loaded", "watchlist_meta", map[string]any{
		"count":    len(codes),
		"stations": codes,
	})

	pubs := deps.Publishers
	if pubs == nil {
		pubs, err = buildPublishers(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
	}
	fanout := publishers.NewFanout(pubs)

	fetchers := deps.Fetchers
	if fetchers == nil {
		client := ana.NewClient(ana.ClientConfig{
			BaseURL:   cfg.ANABaseURL,
			Timeout:   cfg.HTTPTimeout,
			UserAgent: cfg.UserAgent,
			Logger:    log,
		})
		fetchers = watchlist.DefaultFetcherRegistry(client)
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		ReadingTTL:      cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"reading_ttl_seconds":      int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return &Collector{
		cfg:          cfg,
		stations:     stations,
		fanout:       fanout,
		service:      collector.NewService(fetchers, fanout, log, store),
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

func buildPublishers(ctx context.Context, cfg *config.Config, log logger.Logger) ([]publishers.Publisher, error) {
	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return pubs, nil
}

// Run polls immediately, then on every interval until ctx is cancelled.
// Failed passes are logged and the loop keeps going.
func (c *Collector) Run(ctx context.Context) error {
	if c == nil || c.service == nil {
		return fmt.Errorf("collector is not initialized")
	}
	defer c.close()

	stations := c.stations.All()
	c.log.InfoObj("collector loop starting", "collector_state", map[string]any{
		"stations_count":   len(stations),
		"publishers_count": c.fanout.Size(),
		"poll_interval":    c.pollInterval.String(),
	})

	if err := c.runOnce(ctx, stations); err != nil {
		c.log.ErrorObj("initial poll failed", "error", err.Error())
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.InfoObj("collector loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := c.runOnce(ctx, stations); err != nil {
				c.log.ErrorObj("scheduled poll failed", "error", err.Error())
			}
		}
	}
}

// runOnce performs a single poll pass across all stations.
func (c *Collector) runOnce(ctx context.Context, stations []watchlist.Station) error {
	start := time.Now()
	c.log.InfoObj("poll started", "poll_meta", map[string]any{
		"stations_count": len(stations),
		"started_at":     start.UTC(),
	})
	if err := c.service.Run(ctx, stations); err != nil {
		return err
	}
	c.log.InfoObj("poll completed", "poll_meta", map[string]any{
		"stations_count": len(stations),
		"elapsed_ms":     time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases the publishers and the store, logging failures.
func (c *Collector) close() {
	if err := c.fanout.Close(); err != nil {
		c.log.ErrorObj("publisher close failed", "error", err.Error())
	}
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.log.ErrorObj("storage close failed", "error", err.Error())
	}
}
