package company

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// NotesCmd returns the company notes subcommand
func NotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Replace the notes of a company",
		Long: `Replace the notes of a company. Requires full access to its pipeline.
The new notes are also written to every linked copy (or the original) in
pipelines where the user has full access; the rest are reported as skipped.

Examples:
  dealflow company notes --id company-1 --pipeline mainPipeline --notes "hot lead"

  # Without --pipeline the first pipeline holding the company is used
  dealflow company notes --id company-4 --notes "call back in May"

  # Clear notes
  dealflow company notes --id company-4 --notes ""
`,
		RunE: runNotes,
	}

	cmd.Flags().String("id", "", "Company ID (required)")
	cmd.Flags().String("pipeline", "", "Pipeline holding the company (default: first holder)")
	cmd.Flags().String("notes", "", "New notes (required, may be empty)")
	markRequired(cmd, "id", "notes")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runNotes(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	companyID, _ := cmd.Flags().GetString("id")
	pipelineID, _ := cmd.Flags().GetString("pipeline")
	notes, _ := cmd.Flags().GetString("notes")

	res := cliInstance.App.Store.UpdateNotes(cliInstance.App.CurrentUser(),
		types.PipelineID(pipelineID), types.CompanyID(companyID), notes)
	return cli.ReportResult(formatter, res)
}
