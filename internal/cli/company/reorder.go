package company

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// ReorderCmd returns the company reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Move a company between positions within one pipeline",
		Long: `Move the company at --from-index of --from-column to --to-index of
--to-column. Requires full access to the pipeline. Indices start at 0;
within one column --to-index addresses the column after removal.

Examples:
  # Move the first inbox company to the top of due-diligence
  dealflow company reorder --pipeline mainPipeline \
    --from-column inbox --from-index 0 --to-column due-diligence --to-index 0

  # Swap the first two companies of a column
  dealflow company reorder --pipeline mainPipeline \
    --from-column inbox --from-index 0 --to-index 1
`,
		RunE: runReorder,
	}

	cmd.Flags().String("pipeline", "", "Pipeline ID (required)")
	cmd.Flags().String("from-column", "", "Source column ID (required)")
	cmd.Flags().Int("from-index", 0, "Position in the source column")
	cmd.Flags().String("to-column", "", "Destination column ID (default: source column)")
	cmd.Flags().Int("to-index", 0, "Position in the destination column")
	markRequired(cmd, "pipeline", "from-column")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runReorder(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	pipelineID, _ := cmd.Flags().GetString("pipeline")
	fromColumn, _ := cmd.Flags().GetString("from-column")
	fromIndex, _ := cmd.Flags().GetInt("from-index")
	toColumn, _ := cmd.Flags().GetString("to-column")
	toIndex, _ := cmd.Flags().GetInt("to-index")
	if toColumn == "" {
		toColumn = fromColumn
	}

	res := cliInstance.App.Store.Reorder(cliInstance.App.CurrentUser(), board.ReorderRequest{
		PipelineID:     types.PipelineID(pipelineID),
		SourceColumnID: types.ColumnID(fromColumn),
		SourceIndex:    fromIndex,
		DestColumnID:   types.ColumnID(toColumn),
		DestIndex:      toIndex,
	})
	return cli.ReportResult(formatter, res)
}
