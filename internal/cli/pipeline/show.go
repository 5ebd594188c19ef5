package pipeline

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/cli/styles"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// ShowCmd returns the pipeline show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a pipeline board",
		Long: `Show the columns and companies of a pipeline, with the current user's
access badge. Without --id the first accessible pipeline is shown.

Examples:
  dealflow pipeline show
  dealflow pipeline show --id secondaryPipeline
  dealflow pipeline show --id mainPipeline --column inbox --json`,
		RunE: runShow,
	}

	cmd.Flags().String("id", "", "Pipeline ID (default: first accessible pipeline)")
	cmd.Flags().String("column", "", "Only show this column")
	cli.AddOutputFlags(cmd)

	return cmd
}

// BoardJSON is the JSON shape of a board view
type BoardJSON struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Owner   string       `json:"owner_user_id"`
	Access  string       `json:"access"`
	Columns []ColumnJSON `json:"columns"`
}

// ColumnJSON is one column of a board view
type ColumnJSON struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Companies []models.Company `json:"companies"`
}

// NewBoardJSON converts a board view for output
func NewBoardJSON(view board.BoardView) BoardJSON {
	b := BoardJSON{
		ID:      string(view.Pipeline.ID),
		Name:    view.Pipeline.Name,
		Owner:   string(view.Pipeline.OwnerUserID),
		Access:  view.Access.String(),
		Columns: make([]ColumnJSON, 0, len(view.Columns)),
	}
	for _, col := range view.Columns {
		companies := col.Companies
		if companies == nil {
			companies = []models.Company{}
		}
		b.Columns = append(b.Columns, ColumnJSON{ID: string(col.ID), Title: col.Title, Companies: companies})
	}
	return b
}

func runShow(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	pipelineID, _ := cmd.Flags().GetString("id")
	columnID, _ := cmd.Flags().GetString("column")

	user := cliInstance.App.CurrentUser()
	store := cliInstance.App.Store

	if pipelineID == "" {
		accessible := store.ListAccessiblePipelines(user)
		if len(accessible) == 0 {
			return cli.NotFound(formatter, "NO_PIPELINE", "no accessible pipeline",
				"Act as another user with --user", board.ErrNotFound)
		}
		pipelineID = string(accessible[0].ID)
	}

	view, ok := store.Board(user, types.PipelineID(pipelineID))
	if !ok {
		return cli.NotFound(formatter, "PIPELINE_NOT_FOUND",
			fmt.Sprintf("pipeline %s not found", pipelineID),
			"Use 'dealflow pipeline list' to see accessible pipelines", board.ErrNotFound)
	}

	if columnID != "" {
		view, ok = onlyColumn(view, types.ColumnID(columnID))
		if !ok {
			return cli.NotFound(formatter, "COLUMN_NOT_FOUND",
				fmt.Sprintf("column %s not found in %s", columnID, pipelineID),
				"Use 'dealflow pipeline show --id "+pipelineID+"' to see its columns", board.ErrNotFound)
		}
	}

	if formatter.JSON {
		return formatter.Success(NewBoardJSON(view))
	}

	out := cmd.OutOrStdout()
	if formatter.Quiet {
		for _, col := range view.Columns {
			for _, c := range col.Companies {
				fmt.Fprintln(out, c.ID)
			}
		}
		return nil
	}

	fmt.Fprintln(out, styles.RenderBoard(view))
	return nil
}

func onlyColumn(view board.BoardView, columnID types.ColumnID) (board.BoardView, bool) {
	for _, col := range view.Columns {
		if col.ID == columnID {
			view.Columns = []board.ColumnView{col}
			return view, true
		}
	}
	return view, false
}
