package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/hidro-hq/ana-telemetry/internal/domain"
	"github.com/hidro-hq/ana-telemetry/internal/logger"
	"github.com/hidro-hq/ana-telemetry/pkg/ana"
	"github.com/hidro-hq/ana-telemetry/pkg/publishers"
	"github.com/hidro-hq/ana-telemetry/pkg/watchlist"
)

// StationProcessor fetches one station, drops readings already published and
// fans the rest out.
type StationProcessor struct {
	registry  watchlist.FetcherRegistry
	publisher EventPublisher
	log       logger.Logger
	deduper   Deduper
}

// NewStationProcessor wires a processor. A nil deduper publishes every reading.
func NewStationProcessor(reg watchlist.FetcherRegistry, pub EventPublisher, log logger.Logger, deduper Deduper) *StationProcessor {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &StationProcessor{
		registry:  reg,
		publisher: pub,
		log:       log,
		deduper:   deduper,
	}
}

// Process polls st once. An empty answer from the service is not a failure.
func (p *StationProcessor) Process(ctx context.Context, st watchlist.Station) error {
	fetcher, err := p.registry.FetcherFor(st)
	if err != nil {
		return fmt.Errorf("resolve fetcher for station %s: %w", st.Code, err)
	}

	readings, err := fetcher.Fetch(ctx, st)
	if errors.Is(err, ana.ErrNoDataAvailable) {
		p.log.InfoObj("station has no data for window", "station_empty", map[string]any{
			"station_code": st.Code,
			"source":       st.Source,
			"message":      err.Error(),
		})
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch station %s (%s): %w", st.Code, st.Source, err)
	}

	fresh := p.filterNewReadings(st, readings)
	published, err := p.publish(ctx, fresh)

	p.log.InfoObj("station poll completed", "station_result", map[string]any{
		"station_code":       st.Code,
		"source":             st.Source,
		"readings_collected": len(readings),
		"readings_fresh":     len(fresh),
		"readings_published": published,
	})
	return err
}

// filterNewReadings drops readings the deduper has seen. A failed lookup keeps
// the reading so it is not lost.
func (p *StationProcessor) filterNewReadings(st watchlist.Station, readings []domain.Reading) []domain.Reading {
	if p.deduper == nil {
		return readings
	}

	out := make([]domain.Reading, 0, len(readings))
	for _, r := range readings {
		seen, err := p.deduper.SeenReading(r.ID())
		if err != nil {
			p.log.WarnObj("dedup lookup failed", "dedup_error", map[string]any{
				"station_code": st.Code,
				"reading_id":   r.ID(),
				"error":        err.Error(),
			})
			out = append(out, r)
			continue
		}
		if !seen {
			out = append(out, r)
		}
	}
	return out
}

// publish sends each reading and marks it once at least one sink accepted it.
func (p *StationProcessor) publish(ctx context.Context, readings []domain.Reading) (int, error) {
	if p.publisher == nil || len(readings) == 0 {
		return 0, nil
	}

	var errs []error
	published := 0
	for _, r := range readings {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		delivered, err := p.publisher.Publish(ctx, publishers.NewEvent(r))
		if err != nil {
			errs = append(errs, fmt.Errorf("publish reading %s: %w", r.ID(), err))
		}
		if delivered == 0 {
			continue
		}
		published++

		if p.deduper == nil {
			continue
		}
		if err := p.deduper.MarkReading(r.ID()); err != nil {
			errs = append(errs, fmt.Errorf("mark reading %s: %w", r.ID(), err))
		}
	}
	return published, errors.Join(errs...)
}
