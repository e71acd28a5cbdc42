package collector

import (
	"context"

	"github.com/hidro-hq/ana-telemetry/pkg/publishers"
)

// EventPublisher publishes fresh readings downstream and reports how many sinks accepted each.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which readings were already published.
type Deduper interface {
	SeenReading(id string) (bool, error)
	MarkReading(id string) error
}
