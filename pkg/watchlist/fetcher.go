package watchlist

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hidro-hq/ana-telemetry/internal/domain"
	"github.com/hidro-hq/ana-telemetry/pkg/ana"
)

// TelemetryClient is the part of *ana.Client the fetchers need.
type TelemetryClient interface {
	StationData(ctx context.Context, req ana.DataRequest) (*ana.Table, error)
	TimeSeries(ctx context.Context, req ana.SeriesRequest) (*ana.Table, error)
}

// Fetcher retrieves the readings of one watched station.
type Fetcher interface {
	Source() domain.Source
	Fetch(ctx context.Context, st Station) ([]domain.Reading, error)
}

// FetcherRegistry resolves the fetcher for a station's source.
type FetcherRegistry interface {
	FetcherFor(st Station) (Fetcher, error)
}

type fetcherRegistry struct {
	mu       sync.RWMutex
	bySource map[domain.Source]Fetcher
}

// NewFetcherRegistry registers fetchers by the source they serve. Later
// fetchers replace earlier ones for the same source.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{bySource: make(map[domain.Source]Fetcher, len(fetchers))}
	for _, f := range fetchers {
		if f == nil {
			continue
		}
		key := domain.Source(strings.ToLower(strings.TrimSpace(string(f.Source()))))
		if key == "" {
			continue
		}
		reg.bySource[key] = f
	}
	return reg
}

// FetcherFor selects the fetcher registered for st.Source.
func (r *fetcherRegistry) FetcherFor(st Station) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	if strings.TrimSpace(st.Code) == "" {
		return nil, fmt.Errorf("station code is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.bySource[st.Source]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no fetcher registered for station %q (source %q)", st.Code, st.Source)
}

// DefaultFetcherRegistry wires the telemetric and series fetchers to client.
func DefaultFetcherRegistry(client TelemetryClient) FetcherRegistry {
	return NewFetcherRegistry(
		NewTelemetricFetcher(client, time.Now),
		NewSeriesFetcher(client, time.Now),
	)
}

// telemetricFetcher polls DadosHidrometeorologicos over the station's lookback window.
type telemetricFetcher struct {
	client TelemetryClient
	now    func() time.Time
}

func NewTelemetricFetcher(client TelemetryClient, now func() time.Time) Fetcher {
	return &telemetricFetcher{client: client, now: now}
}

func (f *telemetricFetcher) Source() domain.Source { return domain.SourceTelemetric }

func (f *telemetricFetcher) Fetch(ctx context.Context, st Station) ([]domain.Reading, error) {
	if f.client == nil {
		return nil, fmt.Errorf("telemetric fetcher has no client")
	}
	start, end := window(f.now(), st.Lookback())
	table, err := f.client.StationData(ctx, ana.DataRequest{
		StationCode: st.Code,
		Start:       start,
		End:         end,
	})
	if err != nil {
		return nil, err
	}
	return readingsFromTable(st, domain.SourceTelemetric, table), nil
}

// seriesFetcher polls HidroSerieHistorica for the station's configured kind.
type seriesFetcher struct {
	client TelemetryClient
	now    func() time.Time
}

func NewSeriesFetcher(client TelemetryClient, now func() time.Time) Fetcher {
	return &seriesFetcher{client: client, now: now}
}

func (f *seriesFetcher) Source() domain.Source { return domain.SourceSeries }

func (f *seriesFetcher) Fetch(ctx context.Context, st Station) ([]domain.Reading, error) {
	if f.client == nil {
		return nil, fmt.Errorf("series fetcher has no client")
	}
	start, end := window(f.now(), st.Lookback())
	table, err := f.client.TimeSeries(ctx, ana.SeriesRequest{
		StationCode: st.Code,
		Start:       start,
		End:         end,
		Kind:        ana.SeriesKind(st.Kind),
		Consistency: ana.Consistency(st.Consistency),
	})
	if err != nil {
		return nil, err
	}
	return readingsFromTable(st, domain.SourceSeries, table), nil
}

func window(now time.Time, lookback time.Duration) (string, string) {
	return ana.Date(now.Add(-lookback)), ana.Date(now)
}

// readingsFromTable turns each row with a parsable index date into a reading.
func readingsFromTable(st Station, source domain.Source, table *ana.Table) []domain.Reading {
	if table == nil {
		return nil
	}
	index := table.Index()
	readings := make([]domain.Reading, 0, table.Len())
	for _, row := range table.Rows() {
		at, ok := row.Time(index)
		if !ok {
			continue
		}
		values := row.Map()
		delete(values, index)
		readings = append(readings, domain.Reading{
			StationCode: st.Code,
			StationName: st.Name,
			Source:      source,
			Timestamp:   at,
			Values:      values,
		})
	}
	return readings
}
