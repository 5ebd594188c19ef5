package pipeline

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/cli/styles"
)

// ListCmd returns the pipeline list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pipelines the current user can access",
		Long: `List every pipeline the current user has at least read access to,
in board order, with the access level for each.

Examples:
  dealflow pipeline list
  dealflow pipeline list --user admin123
  dealflow pipeline list --json`,
		RunE: runList,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	store := cliInstance.App.Store
	user := cliInstance.App.CurrentUser()
	pipelines := store.ListAccessiblePipelines(user)

	summaries := make([]Summary, 0, len(pipelines))
	for _, p := range pipelines {
		summaries = append(summaries, newSummary(p, store.AccessLevel(user, p.ID)))
	}

	if formatter.JSON {
		return formatter.Success(summaries)
	}

	out := cmd.OutOrStdout()
	if formatter.Quiet {
		for _, s := range summaries {
			fmt.Fprintln(out, s.ID)
		}
		return nil
	}

	if len(summaries) == 0 {
		if user == nil {
			fmt.Fprintln(out, "Not logged in: no pipelines are accessible")
		} else {
			fmt.Fprintf(out, "No pipelines accessible to %s\n", user.ID)
		}
		return nil
	}

	for _, p := range pipelines {
		fmt.Fprintln(out, styles.RenderPipelineLine(p, store.AccessLevel(user, p.ID)))
	}
	return nil
}
