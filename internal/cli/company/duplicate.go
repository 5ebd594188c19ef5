package company

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// DuplicateCmd returns the company duplicate subcommand
func DuplicateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicate",
		Short: "Copy a company into another pipeline",
		Long: `Copy a company into the first column of a target pipeline under a new
id. The source stays where it is and needs no access; only full access
to the target is required.

With --linked the copy and its original share notes: a note update on
either one is applied to the other.

Examples:
  dealflow company duplicate --id company-1 --from mainPipeline --to secondaryPipeline
  dealflow company duplicate --id company-1 --from mainPipeline --to secondaryPipeline --linked

  # Quiet mode prints the new company id
  NEW=$(dealflow company duplicate --id company-1 --from mainPipeline --to secondaryPipeline -q)
`,
		RunE: runDuplicate,
	}

	cmd.Flags().String("id", "", "Company ID (required)")
	cmd.Flags().String("from", "", "Source pipeline ID (required)")
	cmd.Flags().String("to", "", "Target pipeline ID (required)")
	cmd.Flags().Bool("linked", false, "Keep notes of the copy and the original in sync")
	markRequired(cmd, "id", "from", "to")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	companyID, _ := cmd.Flags().GetString("id")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	linked, _ := cmd.Flags().GetBool("linked")

	res := cliInstance.App.Store.DuplicateCompany(cliInstance.App.CurrentUser(), board.DuplicateRequest{
		CompanyID:        types.CompanyID(companyID),
		SourcePipelineID: types.PipelineID(from),
		TargetPipelineID: types.PipelineID(to),
		Linked:           linked,
	})
	return cli.ReportResult(formatter, res)
}
