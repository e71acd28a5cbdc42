package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hidro-hq/ana-telemetry/internal/config"
	"github.com/hidro-hq/ana-telemetry/internal/domain"
	"github.com/hidro-hq/ana-telemetry/pkg/publishers"
	"github.com/hidro-hq/ana-telemetry/pkg/watchlist"
)

type staticFetcher struct{}

func (staticFetcher) Source() domain.Source { return domain.SourceTelemetric }
func (staticFetcher) Fetch(_ context.Context, st watchlist.Station) ([]domain.Reading, error) {
	return []domain.Reading{{
		StationCode: st.Code,
		Source:      domain.SourceTelemetric,
		Timestamp:   time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
	}}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishers.Event
	got    chan struct{}
}

func (p *recordingPublisher) ID() string   { return "rec" }
func (p *recordingPublisher) Type() string { return "memory" }
func (p *recordingPublisher) Publish(_ context.Context, evt publishers.Event) error {
	p.mu.Lock()
	p.events = append(p.events, evt)
	p.mu.Unlock()
	select {
	case p.got <- struct{}{}:
	default:
	}
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	watch := filepath.Join(dir, "watchlist.yaml")
	if err := os.WriteFile(watch, []byte("stations:\n  - code: 15400000\n"), 0o644); err != nil {
		t.Fatalf("write watchlist: %v", err)
	}
	return &config.Config{
		ANABaseURL:             "http://127.0.0.1:1/ServiceANA.asmx",
		HTTPTimeout:            time.Second,
		WatchlistFile:          watch,
		PublishersFile:         filepath.Join(dir, "missing.yaml"),
		PollInterval:           time.Hour,
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(dir, "data", "readings.db"),
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}
}

func TestCollectorPublishesOnStartupAndStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	pub := &recordingPublisher{got: make(chan struct{}, 1)}

	c, err := NewCollector(context.Background(), cfg, nil, Deps{
		Fetchers:   watchlist.NewFetcherRegistry(staticFetcher{}),
		Publishers: []publishers.Publisher{pub},
	})
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case <-pub.got:
	case <-time.After(5 * time.Second):
		t.Fatal("no reading published on startup")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not exit after cancel")
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.events) != 1 || pub.events[0].StationCode != "15400000" {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestCollectorSkipsReadingsAlreadyPublished(t *testing.T) {
	cfg := testConfig(t)
	pub := &recordingPublisher{got: make(chan struct{}, 1)}
	deps := Deps{
		Fetchers:   watchlist.NewFetcherRegistry(staticFetcher{}),
		Publishers: []publishers.Publisher{pub},
	}

	for i := 0; i < 2; i++ {
		c, err := NewCollector(context.Background(), cfg, nil, deps)
		if err != nil {
			t.Fatalf("NewCollector pass %d: %v", i, err)
		}
		if err := c.runOnce(context.Background(), c.stations.All()); err != nil {
			t.Fatalf("runOnce pass %d: %v", i, err)
		}
		c.close()
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected the bbolt store to suppress the repeat, got %d events", len(pub.events))
	}
}

func TestNewCollectorRequiresPublishersFile(t *testing.T) {
	cfg := testConfig(t)
	if _, err := NewCollector(context.Background(), cfg, nil, Deps{
		Fetchers: watchlist.NewFetcherRegistry(staticFetcher{}),
	}); err == nil {
		t.Fatal("expected error for missing publishers file")
	}
}

func TestNewCollectorRejectsNilConfig(t *testing.T) {
	if _, err := NewCollector(context.Background(), nil, nil, Deps{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}
