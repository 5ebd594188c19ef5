package company

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// MoveCmd returns the company move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a company to another pipeline",
		Long: `Remove a company from one pipeline and append it to the first column
of another. Requires full access to both pipelines.

Examples:
  dealflow company move --id company-4 --from secondaryPipeline --to mainPipeline

  # JSON output for agents
  dealflow company move --id company-4 --from secondaryPipeline --to mainPipeline --json
`,
		RunE: runMove,
	}

	cmd.Flags().String("id", "", "Company ID (required)")
	cmd.Flags().String("from", "", "Source pipeline ID (required)")
	cmd.Flags().String("to", "", "Target pipeline ID (required)")
	markRequired(cmd, "id", "from", "to")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	companyID, _ := cmd.Flags().GetString("id")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	res := cliInstance.App.Store.MoveCompany(cliInstance.App.CurrentUser(),
		types.CompanyID(companyID), types.PipelineID(from), types.PipelineID(to))
	return cli.ReportResult(formatter, res)
}
