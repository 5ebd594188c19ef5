// Package use holds all cli commands related to setting contextual information
// e.g., dealflow use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set and manage contextual information for the current shell session.

The 'use' command prints shell commands that set context for subsequent
commands, eliminating the need to repeatedly specify flags.

Available contexts:
  - user: Act as a user from the directory

Examples:
  eval $(dealflow use user admin123)   # Act as the admin
  eval $(dealflow use user --clear)    # Back to the configured default
  dealflow use user --show             # Show who you are acting as`,
	}

	cmd.AddCommand(UserCmd())

	return cmd
}
