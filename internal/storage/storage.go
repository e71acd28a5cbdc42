package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps the local record of readings already published.

// Store tracks published reading IDs.
type Store interface {
	Close() error
	SeenReading(id string) (bool, error)
	MarkReading(id string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ReadingTTL      time.Duration
	CleanupInterval time.Duration
}

const (
	defaultReadingTTL      = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ReadingTTL <= 0 {
		opts.ReadingTTL = defaultReadingTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                     { return nil }
func (noopStore) SeenReading(string) (bool, error) { return false, nil }
func (noopStore) MarkReading(string) error         { return nil }
