// Package app wires the board store, session and their supporting services
// into one container.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/config"
	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/metrics"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/seed"
	"github.com/thenoetrevino/dealflow/internal/session"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// App holds the board and the services around it
type App struct {
	Store     *board.Store
	Session   *session.Session
	Directory *session.StaticDirectory
	Events    *events.Bus
	Metrics   *metrics.Metrics

	// Registry is set when App created its own metrics registry
	Registry *prometheus.Registry

	users  []models.User
	logger *slog.Logger
}

// New creates a new App from seed data. The session starts as the user
// given by WithUser, or logged out.
func New(sd *seed.Seed, opts ...Option) (*App, error) {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.bus == nil {
		cfg.bus = events.NewBus(events.DefaultBufferSize)
	}

	a := &App{
		Events: cfg.bus,
		users:  sd.Users,
		logger: cfg.logger,
	}

	reg := cfg.registerer
	if reg == nil {
		a.Registry = prometheus.NewRegistry()
		reg = a.Registry
	}
	a.Metrics = metrics.New(reg)

	snap, err := sd.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	storeOpts := []board.Option{
		board.WithPublisher(a.Events),
		board.WithMetrics(a.Metrics),
		board.WithLogger(cfg.logger),
	}
	if cfg.clock != nil {
		storeOpts = append(storeOpts, board.WithClock(cfg.clock))
	}
	a.Store, err = board.NewStore(snap, storeOpts...)
	if err != nil {
		return nil, err
	}

	a.Directory = sd.Directory()
	a.Session = session.New(a.Directory)
	if cfg.userSet && cfg.userID != "" {
		if err := a.Session.SwitchUser(cfg.userID); err != nil {
			return nil, err
		}
	}

	cfg.logger.Debug("app initialized",
		"pipelines", len(snap.Order),
		"users", len(sd.Users),
		"links", snap.Links.Len())
	return a, nil
}

// NewFromConfig loads the configured seed and starts the session as the
// initial user: WithUser if given, else DEALFLOW_USER, else the configured
// default user.
func NewFromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	sd, err := seed.Load(ctx, cfg.Seed.Driver, cfg.Seed.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}

	probe := &appConfig{}
	for _, opt := range opts {
		opt(probe)
	}
	if !probe.userSet {
		id := session.InitialUserID(sd.Directory(), types.UserID(cfg.Session.DefaultUser))
		opts = append(opts, WithUser(id))
	}

	return New(sd, opts...)
}

// CurrentUser returns the acting user, or nil when logged out
func (a *App) CurrentUser() *models.User {
	return a.Session.Current()
}

// Export captures the current board and users as a seed
func (a *App) Export() *seed.Seed {
	return seed.FromSnapshot(a.Store.Snapshot(), a.users)
}

// Close releases application resources. The in-memory board holds none, so
// it only satisfies the CLI lifecycle.
func (a *App) Close() error {
	return nil
}
