// Package cli runs dealflow commands against an in-memory board in tests.
// It lives apart from testutil so packages below internal/cli can use
// testutil without importing the command tree.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealflow/internal/app"
	dfcli "github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/config"
	"github.com/thenoetrevino/dealflow/internal/testutil"
)

// SetupCLITest builds a CLI over the sample board with the session acting
// as user123. Options given are applied after the defaults.
func SetupCLITest(t *testing.T, opts ...app.Option) *dfcli.CLI {
	t.Helper()

	defaults := []app.Option{
		app.WithLogger(testutil.QuietLogger()),
		app.WithUser(config.DefaultUser),
	}
	a, err := app.New(testutil.BuiltinSeed(t), append(defaults, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return &dfcli.CLI{App: a, Config: config.Default()}
}

// ExecuteCLICommand executes a CLI command with a test CLI instance and
// returns what it wrote to stdout
func ExecuteCLICommand(t *testing.T, c *dfcli.CLI, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	stdout, _, err := ExecuteCLICommandWithStderr(t, c, cmd, args)
	return stdout, err
}

// ExecuteCLICommandWithStderr is ExecuteCLICommand also returning stderr
func ExecuteCLICommandWithStderr(t *testing.T, c *dfcli.CLI, cmd *cobra.Command, args []string) (string, string, error) {
	t.Helper()

	if c == nil {
		t.Fatal("cli cannot be nil - SetupCLITest must be called first")
	}

	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(dfcli.WithCLI(context.Background(), c))
	return stdout.String(), stderr.String(), err
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}
