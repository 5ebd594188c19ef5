// Package company holds the commands that change companies on the board
package company

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// CompanyCmd returns the company parent command
func CompanyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Reorder, move, copy, annotate and delete companies",
		Long: `Change companies on the board as the current user.

Every command is checked against the user's access to each pipeline it
touches. A refused command leaves the board unchanged and exits non-zero.`,
	}

	cmd.AddCommand(ReorderCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DuplicateCmd())
	cmd.AddCommand(NotesCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(FindCmd())

	return cmd
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
}
