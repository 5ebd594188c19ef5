package board

import (
	"log/slog"
	"time"

	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/metrics"
)

// Option configures a Store
type Option func(*Store)

// WithPublisher sets the publisher notified after every committed snapshot
func WithPublisher(p events.Publisher) Option {
	return func(s *Store) {
		s.publisher = p
	}
}

// WithMetrics sets the mutation metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithLogger sets the logger for the store
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock sets the time source used for copy ids and event timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDFunc replaces the copy id generator
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithPanicOnViolation makes the store panic when a mutation would introduce
// an invariant violation instead of logging and refusing it. Debug builds
// (-tags debug) enable this by default.
func WithPanicOnViolation(enabled bool) Option {
	return func(s *Store) {
		s.panicOnViolation = enabled
	}
}
