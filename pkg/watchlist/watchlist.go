package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hidro-hq/ana-telemetry/internal/domain"
	"github.com/hidro-hq/ana-telemetry/pkg/ana"
	"gopkg.in/yaml.v3"
)

// Package watchlist loads the stations the collector polls (YAML/JSON).

const defaultLookbackDays = 2

// Station is one watched station and how to poll it.
type Station struct {
	Code         string        `json:"code" yaml:"code"`
	Name         string        `json:"name" yaml:"name"`
	Source       domain.Source `json:"source" yaml:"source"`
	Kind         string        `json:"kind" yaml:"kind"`
	Consistency  string        `json:"consistency" yaml:"consistency"`
	LookbackDays int           `json:"lookback_days" yaml:"lookback_days"`
}

// Lookback is how far back each poll asks for data.
func (s Station) Lookback() time.Duration {
	days := s.LookbackDays
	if days <= 0 {
		days = defaultLookbackDays
	}
	return time.Duration(days) * 24 * time.Hour
}

type document struct {
	Stations []Station `json:"stations" yaml:"stations"`
}

// Registry is an immutable, validated set of watched stations.
type Registry struct {
	stations []Station
	byCode   map[string]Station
}

// All returns a copy of the stations in file order.
func (r *Registry) All() []Station {
	if r == nil || len(r.stations) == 0 {
		return nil
	}
	out := make([]Station, len(r.stations))
	copy(out, r.stations)
	return out
}

// ByCode returns the station registered under the padded code.
func (r *Registry) ByCode(code string) (Station, bool) {
	if r == nil {
		return Station{}, false
	}
	s, ok := r.byCode[ana.PadStationCode(code)]
	return s, ok
}

// LoadRegistry reads and validates the watchlist file.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("watchlist file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}

	doc, err := parseDocument(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(doc.Stations)
}

// NewRegistry sanitizes and validates stations. Codes must be unique per source.
func NewRegistry(stations []Station) (*Registry, error) {
	if len(stations) == 0 {
		return nil, errors.New("watchlist contains no stations")
	}

	reg := &Registry{
		stations: make([]Station, 0, len(stations)),
		byCode:   make(map[string]Station, len(stations)),
	}
	seen := make(map[string]bool, len(stations))
	for i, raw := range stations {
		s := sanitizeStation(raw)
		if err := validateStation(s); err != nil {
			return nil, fmt.Errorf("station[%d]: %w", i, err)
		}
		key := s.Code + "|" + string(s.Source)
		if seen[key] {
			return nil, fmt.Errorf("duplicate station %q for source %q", s.Code, s.Source)
		}
		seen[key] = true
		reg.stations = append(reg.stations, s)
		if _, ok := reg.byCode[s.Code]; !ok {
			reg.byCode[s.Code] = s
		}
	}
	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseDocument(data []byte, ext string) (document, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var lastErr error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var doc document
		if err := d.fn(data, &doc); err != nil {
			lastErr = fmt.Errorf("decode %s watchlist: %w", d.name, err)
			continue
		}
		return doc, nil
	}
	if lastErr != nil {
		return document{}, lastErr
	}
	return document{}, errors.New("watchlist file format not recognized (expected YAML or JSON)")
}

func sanitizeStation(s Station) Station {
	s.Code = ana.PadStationCode(s.Code)
	s.Name = strings.TrimSpace(s.Name)
	s.Source = domain.Source(strings.ToLower(strings.TrimSpace(string(s.Source))))
	s.Kind = strings.ToUpper(strings.TrimSpace(s.Kind))
	s.Consistency = strings.ToUpper(strings.TrimSpace(s.Consistency))
	if s.Source == "" {
		s.Source = domain.SourceTelemetric
	}
	if s.LookbackDays <= 0 {
		s.LookbackDays = defaultLookbackDays
	}
	return s
}

func validateStation(s Station) error {
	if s.Code == "" {
		return errors.New("code is required")
	}
	switch s.Source {
	case domain.SourceTelemetric:
	case domain.SourceSeries:
		if s.Kind == "" {
			return fmt.Errorf("kind is required for series station %q", s.Code)
		}
	default:
		return fmt.Errorf("unsupported source %q for station %q", s.Source, s.Code)
	}
	return nil
}
