// Package testutil holds fixtures shared by dealflow's test packages
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealflow/internal/seed"
)

// QuietLogger returns a logger that discards everything
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// BuiltinSeed returns a fresh copy of the sample board
func BuiltinSeed(t *testing.T) *seed.Seed {
	t.Helper()
	sd, err := seed.Builtin()
	require.NoError(t, err)
	return sd
}
