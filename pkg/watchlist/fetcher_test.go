package watchlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hidro-hq/ana-telemetry/internal/domain"
	"github.com/hidro-hq/ana-telemetry/pkg/ana"
)

var fixedNow = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeClient struct {
	table   *ana.Table
	err     error
	dataReq []ana.DataRequest
	serReq  []ana.SeriesRequest
}

func (f *fakeClient) StationData(_ context.Context, req ana.DataRequest) (*ana.Table, error) {
	f.dataReq = append(f.dataReq, req)
	return f.table, f.err
}

func (f *fakeClient) TimeSeries(_ context.Context, req ana.SeriesRequest) (*ana.Table, error) {
	f.serReq = append(f.serReq, req)
	return f.table, f.err
}

func mustTable(t *testing.T, records []ana.Record) *ana.Table {
	t.Helper()
	table, err := ana.Reshape(records, ana.Schema{
		Path: ".//Row",
		Columns: []ana.Column{
			{Source: "DataHora", Name: "data_hora", Kind: ana.KindDate},
			{Source: "Nivel", Name: "nivel", Optional: true},
		},
		Index: "data_hora",
	})
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	return table
}

func TestTelemetricFetcherBuildsWindowAndReadings(t *testing.T) {
	client := &fakeClient{table: mustTable(t, []ana.Record{
		{"DataHora": "2024-03-04 10:15:00", "Nivel": "312"},
		{"DataHora": "", "Nivel": "1"},
		{"DataHora": "2024-03-04 10:00:00", "Nivel": ""},
	})}
	f := NewTelemetricFetcher(client, clock)

	st := Station{Code: "15400000", Name: "PORTO VELHO", Source: domain.SourceTelemetric, LookbackDays: 3}
	readings, err := f.Fetch(context.Background(), st)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(client.dataReq) != 1 {
		t.Fatalf("expected one request, got %d", len(client.dataReq))
	}
	req := client.dataReq[0]
	if req.StationCode != "15400000" || req.Start != "02/03/2024" || req.End != "05/03/2024" {
		t.Fatalf("unexpected request %+v", req)
	}

	if len(readings) != 2 {
		t.Fatalf("expected rows without a date to be skipped, got %d readings", len(readings))
	}
	first := readings[0]
	if first.StationName != "PORTO VELHO" || first.Source != domain.SourceTelemetric {
		t.Fatalf("unexpected reading %+v", first)
	}
	if !first.Timestamp.Equal(time.Date(2024, 3, 4, 10, 15, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %v", first.Timestamp)
	}
	if _, ok := first.Values["data_hora"]; ok {
		t.Fatal("index column must not be repeated in values")
	}
	if first.Values["nivel"] != "312" {
		t.Fatalf("unexpected values %v", first.Values)
	}
}

func TestSeriesFetcherPassesKindAndConsistency(t *testing.T) {
	client := &fakeClient{table: mustTable(t, nil)}
	f := NewSeriesFetcher(client, clock)

	st := Station{Code: "00047000", Source: domain.SourceSeries, Kind: "L", Consistency: "P", LookbackDays: 31}
	readings, err := f.Fetch(context.Background(), st)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("expected no readings, got %d", len(readings))
	}
	req := client.serReq[0]
	if req.Kind != ana.Levels || req.Consistency != ana.Processed || req.Start != "03/02/2024" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestFetcherPropagatesClientErrors(t *testing.T) {
	client := &fakeClient{err: ana.ErrNoDataAvailable}
	f := NewTelemetricFetcher(client, clock)

	_, err := f.Fetch(context.Background(), Station{Code: "1"})
	if !errors.Is(err, ana.ErrNoDataAvailable) {
		t.Fatalf("expected ErrNoDataAvailable, got %v", err)
	}
}

func TestFetcherRegistryResolvesBySource(t *testing.T) {
	reg := DefaultFetcherRegistry(&fakeClient{})

	f, err := reg.FetcherFor(Station{Code: "1", Source: domain.SourceSeries})
	if err != nil {
		t.Fatalf("FetcherFor series: %v", err)
	}
	if f.Source() != domain.SourceSeries {
		t.Fatalf("resolved wrong fetcher %q", f.Source())
	}

	if _, err := reg.FetcherFor(Station{Code: "1", Source: "radar"}); err == nil {
		t.Fatal("expected error for unknown source")
	}
	if _, err := reg.FetcherFor(Station{Source: domain.SourceTelemetric}); err == nil {
		t.Fatal("expected error for empty code")
	}
}
