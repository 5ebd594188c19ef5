// Package guide prints the dealflow quick reference
package guide

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideContent string

// GuideCmd returns the guide command
func GuideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Print the access rules and a command quick reference",
		Long: `Print a markdown quick reference of who may do what on the board and
the commands that do it. Useful as context for scripts and agents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), guideContent)
			return err
		},
	}
	return cmd
}
