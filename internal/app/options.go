package app

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	bus        *events.Bus
	logger     *slog.Logger
	registerer prometheus.Registerer
	clock      func() time.Time
	userID     types.UserID
	userSet    bool
}

// WithEventBus sets the bus board changes are published on
func WithEventBus(bus *events.Bus) Option {
	return func(cfg *appConfig) {
		cfg.bus = bus
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithRegisterer sets where board metrics are registered
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(cfg *appConfig) {
		cfg.registerer = reg
	}
}

// WithClock sets the time source for copy ids and events
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.clock = now
	}
}

// WithUser starts the session as id instead of the configured default. An
// empty id starts logged out.
func WithUser(id types.UserID) Option {
	return func(cfg *appConfig) {
		cfg.userID = id
		cfg.userSet = true
	}
}
