package domain

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Domain contains core models shared by the collector and publishers.

// Source names the ServiceANA endpoint a reading came from.
type Source string

const (
	SourceTelemetric Source = "telemetric"
	SourceSeries     Source = "series"
)

// ConsistencyField is the series column holding the consistency level.
const ConsistencyField = "nivel_consistencia"

// Reading is one row of a station's telemetry or historical series.
type Reading struct {
	StationCode string            `json:"station_code"`
	StationName string            `json:"station_name,omitempty"`
	Source      Source            `json:"source"`
	Timestamp   time.Time         `json:"timestamp"`
	Values      map[string]string `json:"values"`
}

// ID identifies a reading for deduplication: station, source and instant.
// A series row covers a whole month that keeps filling in and can be
// reconsisted, so its ID also carries the consistency level and a digest of
// the values.
func (r Reading) ID() string {
	parts := []string{
		r.StationCode,
		string(r.Source),
		r.Timestamp.UTC().Format(time.RFC3339),
	}
	if r.Source == SourceSeries {
		parts = append(parts, r.Values[ConsistencyField], valuesDigest(r.Values))
	}
	return strings.Join(parts, "|")
}

// valuesDigest hashes values in key order.
func valuesDigest(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		h.Write([]byte(values[k]))
		h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
