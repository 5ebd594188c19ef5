package company

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// DeleteCmd returns the company delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a company from a pipeline (admins only)",
		Long: `Remove a company from one pipeline. Only admins may delete. Copies of
the company in other pipelines are left in place.

Examples:
  dealflow --user admin123 company delete --id company-4 --pipeline secondaryPipeline
`,
		RunE: runDelete,
	}

	cmd.Flags().String("id", "", "Company ID (required)")
	cmd.Flags().String("pipeline", "", "Pipeline ID (required)")
	markRequired(cmd, "id", "pipeline")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	companyID, _ := cmd.Flags().GetString("id")
	pipelineID, _ := cmd.Flags().GetString("pipeline")

	res := cliInstance.App.Store.DeleteCompany(cliInstance.App.CurrentUser(),
		types.CompanyID(companyID), types.PipelineID(pipelineID))
	return cli.ReportResult(formatter, res)
}
