package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/hidro-hq/ana-telemetry/internal/logger"
	"github.com/hidro-hq/ana-telemetry/pkg/watchlist"
)

// Service coordinates one poll pass across the watched stations.
type Service struct {
	processor *StationProcessor
	log       logger.Logger
}

// NewService wires the collector with the fetcher registry, the publisher
// fanout and an optional deduper.
func NewService(reg watchlist.FetcherRegistry, pub EventPublisher, log logger.Logger, deduper Deduper) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		processor: NewStationProcessor(reg, pub, log, deduper),
		log:       log,
	}
}

// Run polls every station once and joins the per-station failures.
func (s *Service) Run(ctx context.Context, stations []watchlist.Station) error {
	if s == nil || s.processor == nil || s.processor.registry == nil {
		return fmt.Errorf("collector service is not initialized")
	}

	if len(stations) == 0 {
		return fmt.Errorf("no stations configured for polling")
	}

	if errs := s.runAll(ctx, stations); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, stations []watchlist.Station) []error {
	errs := make([]error, 0, len(stations))

	for _, st := range stations {
		if ctx.Err() != nil {
			break
		}
		if err := s.processor.Process(ctx, st); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("station poll failed", "station_error", map[string]any{
				"station_code": st.Code,
				"source":       st.Source,
				"error":        err.Error(),
			})
		}
	}

	return errs
}
