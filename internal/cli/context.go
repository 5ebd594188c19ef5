package cli

import (
	"context"
	"errors"
)

// ContextKey is the type of context keys owned by the cli package
type ContextKey string

// CLIKey is the context key the root command stores the CLI under
const CLIKey ContextKey = "cli"

// ErrNoCLI is returned when a command runs without an initialized CLI
var ErrNoCLI = errors.New("cli not initialized")

// WithCLI returns a copy of ctx carrying c
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, CLIKey, c)
}

// GetCLIFromContext returns the CLI stored by the root command (or a test)
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		return nil, ErrNoCLI
	}
	c, ok := ctx.Value(CLIKey).(*CLI)
	if !ok || c == nil || c.App == nil {
		return nil, ErrNoCLI
	}
	return c, nil
}
