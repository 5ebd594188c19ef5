// Package cli holds what every dealflow command shares: the CLI instance,
// output formatting and exit codes.
package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/dealflow/internal/app"
	"github.com/thenoetrevino/dealflow/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with the board and session
	Config *config.Config
}

// NewCLI loads the configured seed and starts a session
func NewCLI(ctx context.Context, cfg *config.Config, opts ...app.Option) (*CLI, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	application, err := app.NewFromConfig(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize board: %w", err)
	}

	return &CLI{App: application, Config: cfg}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}
