package cmd

import (
	"bytes"
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/seed"
	"github.com/thenoetrevino/dealflow/internal/session"
	clitest "github.com/thenoetrevino/dealflow/internal/testutil/cli"
)

func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// isolate points config, logs and the acting user at a temp dir and restores
// the global loggers afterwards
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(session.UserEnvVar, "")
	t.Setenv("DEALFLOW_SEED", "")
	t.Setenv("DEALFLOW_SEED_DRIVER", "")
	t.Setenv("DEALFLOW_LOG_FILE", filepath.Join(dir, "dealflow.log"))

	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})
	return dir
}

func TestRoot_UsesInjectedCLI(t *testing.T) {
	t.Parallel()

	c := clitest.SetupCLITest(t)
	stdout, _, err := execute(t, cli.WithCLI(context.Background(), c), "pipeline", "list", "-q")
	require.NoError(t, err)
	assert.Equal(t, "mainPipeline\nsecondaryPipeline\n", stdout)
}

func TestRoot_GuideIsStandalone(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, context.Background(), "guide")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dealflow quick reference")
}

func TestRoot_LoadsBuiltinSeed(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := execute(t, context.Background(), "pipeline", "list", "--json")
	require.NoError(t, err)
	result := clitest.ParseJSON(t, stdout)
	assert.Len(t, result["data"], 2)

	_, err = os.Stat(filepath.Join(dir, "dealflow.log"))
	assert.NoError(t, err)
}

func TestRoot_SeedAndUserFlags(t *testing.T) {
	dir := isolate(t)

	sd, err := seed.Builtin()
	require.NoError(t, err)
	sd.Pipelines = sd.Pipelines[1:]

	seedPath := filepath.Join(dir, "board.yaml")
	f, err := os.Create(seedPath)
	require.NoError(t, err)
	require.NoError(t, seed.WriteYAML(f, sd))
	require.NoError(t, f.Close())

	stdout, _, err := execute(t, context.Background(),
		"--seed", seedPath, "--user", "admin123", "pipeline", "list", "-q")
	require.NoError(t, err)
	assert.Equal(t, "secondaryPipeline\n", stdout)
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := isolate(t)

	configPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("session:\n  default_user: admin123\n"), 0o644))

	stdout, _, err := execute(t, context.Background(), "--config", configPath, "use", "user", "--show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Current user: admin123")
}

func TestRoot_UnknownUser(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, context.Background(), "--user", "mallory", "pipeline", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrUnknownUser)
	assert.False(t, cli.Reported(err))
}

func TestRoot_MutationExitCode(t *testing.T) {
	isolate(t)

	_, stderr, err := execute(t, context.Background(),
		"company", "delete", "--id", "company-4", "--pipeline", "secondaryPipeline")
	require.Error(t, err)
	assert.Equal(t, cli.ExitDenied, cli.ExitCode(err))
	assert.Contains(t, stderr, "admin role required")
}
