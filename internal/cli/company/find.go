package company

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// FindCmd returns the company find subcommand
func FindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Show where a company is and what it is linked to",
		Long: `Show the accessible pipelines and columns holding a company, and the
companies it shares notes with.

Examples:
  dealflow company find --id company-1
  dealflow company find --id company-1 --json
`,
		RunE: runFind,
	}

	cmd.Flags().String("id", "", "Company ID (required)")
	markRequired(cmd, "id")

	cli.AddOutputFlags(cmd)

	return cmd
}

// Location is one place a company was found
type Location struct {
	PipelineID string `json:"pipeline_id"`
	ColumnID   string `json:"column_id,omitempty"`
	Name       string `json:"name"`
	Notes      string `json:"notes,omitempty"`
}

// FindResult is the output of 'company find'
type FindResult struct {
	ID        string     `json:"id"`
	Locations []Location `json:"locations"`
	Linked    []string   `json:"linked,omitempty"`
}

// GetID returns the company id, for quiet output
func (r FindResult) GetID() string {
	return r.ID
}

func runFind(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	companyID, _ := cmd.Flags().GetString("id")
	id := types.CompanyID(companyID)

	user := cliInstance.App.CurrentUser()
	snap := cliInstance.App.Store.Snapshot()

	result := FindResult{ID: companyID, Locations: []Location{}}
	for _, pid := range snap.FindCompany(id) {
		if !snap.AccessLevel(user, pid).AtLeast(models.AccessRead) {
			continue
		}
		p, _ := snap.Pipeline(pid)
		loc := Location{PipelineID: string(pid), Name: p.Companies[id].Name, Notes: p.Companies[id].Notes}
		if col, ok := p.ColumnOf(id); ok {
			loc.ColumnID = string(col)
		}
		result.Locations = append(result.Locations, loc)
	}

	if len(result.Locations) == 0 {
		return cli.NotFound(formatter, "COMPANY_NOT_FOUND",
			fmt.Sprintf("company %s not found in any accessible pipeline", companyID),
			"Use 'dealflow pipeline show' to see company ids", board.ErrNotFound)
	}

	for _, linked := range snap.Links.ResolveLinked(id) {
		result.Linked = append(result.Linked, string(linked))
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(result)
	}

	out := cmd.OutOrStdout()
	for _, loc := range result.Locations {
		column := loc.ColumnID
		if column == "" {
			column = "(no column)"
		}
		fmt.Fprintf(out, "%s: %s / %s\n", loc.Name, loc.PipelineID, column)
		if loc.Notes != "" {
			fmt.Fprintf(out, "  notes: %s\n", loc.Notes)
		}
	}
	for _, linked := range result.Linked {
		fmt.Fprintf(out, "linked: %s\n", linked)
	}
	return nil
}
