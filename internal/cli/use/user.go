package use

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/session"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// UserCmd returns the use user subcommand
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user [user-id]",
		Short: "Set the acting user for current shell session",
		Long: `Set the acting user using environment variables.
This command outputs shell commands that should be evaluated:

  eval $(dealflow use user admin123)      # Switch to the admin
  eval $(dealflow use user user123)       # Switch to the regular user
  eval $(dealflow use user --clear)       # Clear the user context
  dealflow use user --show                # Show the acting user
  dealflow use user --list                # List known users

The DEALFLOW_USER environment variable will be set in your current shell
session only. The --user flag on other commands takes precedence over
this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseUser,
	}

	cmd.Flags().Bool("clear", false, "Clear the current user context")
	cmd.Flags().Bool("show", false, "Show the current user context")
	cmd.Flags().Bool("list", false, "List the users in the directory")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseUser(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	listFlag, _ := cmd.Flags().GetBool("list")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	// Handle --clear flag
	if clearFlag {
		if dryRun {
			fmt.Fprintf(errOut, "Would clear %s\n", session.UserEnvVar)
			return nil
		}
		fmt.Fprintf(out, "unset %s\n", session.UserEnvVar)
		fmt.Fprintf(errOut, "Cleared user context\n")
		return nil
	}

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}

	if showFlag {
		return showCurrentUser(cmd, cliInstance)
	}

	if listFlag {
		for _, u := range cliInstance.App.Directory.Users() {
			fmt.Fprintf(out, "%s\t%s\t%s\n", u.ID, u.Name, u.Role)
		}
		return nil
	}

	// Validate user ID provided
	if len(args) == 0 {
		return fmt.Errorf("user ID required\nUsage: eval $(dealflow use user <user-id>)")
	}

	u, ok := cliInstance.App.Directory.Lookup(types.UserID(args[0]))
	if !ok {
		fmt.Fprintf(errOut, "Error: user %s not found\n", args[0])
		fmt.Fprintf(errOut, "Suggestion: Use 'dealflow use user --list' to see available users\n")
		return cli.Exit(cli.ExitNotFound, errors.Join(session.ErrUnknownUser, fmt.Errorf("user %s", args[0])))
	}

	// Output shell export command (to stdout for eval)
	if dryRun {
		fmt.Fprintf(errOut, "Would set %s=%s (%s)\n", session.UserEnvVar, u.ID, u.Name)
		return nil
	}

	fmt.Fprintf(out, "export %s=%s\n", session.UserEnvVar, u.ID)
	fmt.Fprintf(errOut, "Now acting as %s: %s\n", u.ID, u.Name)

	return nil
}

func showCurrentUser(cmd *cobra.Command, cliInstance *cli.CLI) error {
	out := cmd.OutOrStdout()

	current := cliInstance.App.CurrentUser()
	if current == nil {
		fmt.Fprintln(out, "Not logged in")
		fmt.Fprintln(out, "Use 'eval $(dealflow use user <user-id>)' to pick a user")
		return nil
	}

	source := "configured default"
	if env := os.Getenv(session.UserEnvVar); env == string(current.ID) {
		source = session.UserEnvVar
	}
	fmt.Fprintf(out, "Current user: %s (%s, %s) from %s\n", current.ID, current.Name, current.Role, source)
	return nil
}
