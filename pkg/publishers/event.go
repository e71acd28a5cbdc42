package publishers

import (
	"time"

	"github.com/hidro-hq/ana-telemetry/internal/domain"
)

// Event is the payload published downstream for one station reading.
type Event struct {
	StationCode string         `json:"station_code"`
	Source      domain.Source  `json:"source"`
	Reading     domain.Reading `json:"reading"`
	CollectedAt time.Time      `json:"collected_at"`
}

// NewEvent wraps a reading collected now.
func NewEvent(reading domain.Reading) Event {
	return Event{
		StationCode: reading.StationCode,
		Source:      reading.Source,
		Reading:     reading,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes are the routing keys every queue sink attaches to a message.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"station_code": e.StationCode,
		"source":       string(e.Source),
	}
}
