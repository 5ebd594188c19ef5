package script

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/dealflow/internal/app"
	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/cli/pipeline"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// StepReport is the outcome of one step
type StepReport struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Action string `json:"action"`
	Expect string `json:"expect,omitempty"`

	// User is the acting user once the step ran
	User string `json:"user,omitempty"`

	Result *cli.ResultView     `json:"result,omitempty"`
	Board  *pipeline.BoardJSON `json:"board,omitempty"`
	Error  string              `json:"error,omitempty"`
	Passed bool                `json:"passed"`

	View *board.BoardView `json:"-"`
}

// Runner executes scripts against one App. Saved variables persist across
// Run calls.
type Runner struct {
	app  *app.App
	vars map[string]types.CompanyID

	// OnStep, when set, is called after every step
	OnStep func(StepReport)

	// StopOnFailure ends the run at the first failed step
	StopOnFailure bool
}

// NewRunner creates a runner for a
func NewRunner(a *app.App) *Runner {
	return &Runner{app: a, vars: make(map[string]types.CompanyID)}
}

// Run executes the steps in order and returns a report per executed step.
// The error is ErrStepFailed when any step missed its expectation, or the
// context error when ctx ended between steps.
func (r *Runner) Run(ctx context.Context, s *Script) ([]StepReport, error) {
	reports := make([]StepReport, 0, len(s.Steps))
	failed := 0

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report := r.runStep(i+1, step)
		reports = append(reports, report)
		if r.OnStep != nil {
			r.OnStep(report)
		}

		if !report.Passed {
			failed++
			slog.Debug("script step failed", "index", report.Index, "action", report.Action, "error", report.Error)
			if r.StopOnFailure {
				break
			}
		}
	}

	if failed > 0 {
		return reports, fmt.Errorf("%w: %d of %d", ErrStepFailed, failed, len(reports))
	}
	return reports, nil
}

func (r *Runner) runStep(index int, step Step) StepReport {
	action, err := step.Action()
	report := StepReport{Index: index, Name: step.Name, Action: action, Expect: step.Expect}
	if err != nil {
		report.Error = err.Error()
		return report
	}

	switch action {
	case ActionSwitchUser:
		err = r.app.Session.SwitchUser(types.UserID(step.SwitchUser))
		report.Passed = r.expectError(&report, step.Expect, err)
	case ActionLogout:
		r.app.Session.Logout()
		report.Passed = step.Expect == ""
	case ActionShow:
		r.show(&report, step)
	default:
		r.mutate(&report, step, action)
	}

	if u := r.app.CurrentUser(); u != nil {
		report.User = string(u.ID)
	}
	return report
}

func (r *Runner) expectError(report *StepReport, expect string, err error) bool {
	if err != nil {
		report.Error = err.Error()
	}
	switch expect {
	case "":
		return err == nil
	case ExpectUnknownUser:
		return err != nil
	default:
		return false
	}
}

func (r *Runner) show(report *StepReport, step Step) {
	view, ok := r.app.Store.Board(r.app.CurrentUser(), types.PipelineID(step.Show.Pipeline))
	if !ok {
		report.Error = fmt.Sprintf("pipeline %s not found", step.Show.Pipeline)
		report.Passed = step.Expect == string(board.ReasonNotFound)
		return
	}
	b := pipeline.NewBoardJSON(view)
	report.Board = &b
	report.View = &view
	report.Passed = step.Expect == ""
}

func (r *Runner) mutate(report *StepReport, step Step, action string) {
	user := r.app.CurrentUser()
	store := r.app.Store

	var res board.Result
	switch action {
	case ActionReorder:
		req := step.Reorder
		toColumn := req.ToColumn
		if toColumn == "" {
			toColumn = req.FromColumn
		}
		res = store.Reorder(user, board.ReorderRequest{
			PipelineID:     types.PipelineID(req.Pipeline),
			SourceColumnID: types.ColumnID(req.FromColumn),
			SourceIndex:    req.FromIndex,
			DestColumnID:   types.ColumnID(toColumn),
			DestIndex:      req.ToIndex,
		})

	case ActionMove:
		id, err := r.resolve(step.Move.Company)
		if err != nil {
			report.Error = err.Error()
			return
		}
		res = store.MoveCompany(user, id, types.PipelineID(step.Move.From), types.PipelineID(step.Move.To))

	case ActionDuplicate:
		id, err := r.resolve(step.Duplicate.Company)
		if err != nil {
			report.Error = err.Error()
			return
		}
		res = store.DuplicateCompany(user, board.DuplicateRequest{
			CompanyID:        id,
			SourcePipelineID: types.PipelineID(step.Duplicate.From),
			TargetPipelineID: types.PipelineID(step.Duplicate.To),
			Linked:           step.Duplicate.Linked,
		})
		if res.Applied && step.Duplicate.As != "" {
			r.vars[step.Duplicate.As] = res.CompanyID
		}

	case ActionNotes:
		id, err := r.resolve(step.Notes.Company)
		if err != nil {
			report.Error = err.Error()
			return
		}
		res = store.UpdateNotes(user, types.PipelineID(step.Notes.Pipeline), id, step.Notes.Notes)

	case ActionDelete:
		id, err := r.resolve(step.Delete.Company)
		if err != nil {
			report.Error = err.Error()
			return
		}
		res = store.DeleteCompany(user, id, types.PipelineID(step.Delete.Pipeline))
	}

	view := cli.NewResultView(res)
	report.Result = &view
	if err := res.Err(); err != nil {
		report.Error = err.Error()
	}

	if step.Expect == "" {
		report.Passed = res.Err() == nil
	} else {
		report.Passed = string(res.Reason) == step.Expect
	}
}

// resolve expands a $name reference saved by an earlier duplicate step
func (r *Runner) resolve(ref string) (types.CompanyID, error) {
	name, ok := strings.CutPrefix(ref, "$")
	if !ok {
		return types.CompanyID(ref), nil
	}
	id, ok := r.vars[name]
	if !ok {
		return "", fmt.Errorf("%w: $%s", ErrUnknownVariable, name)
	}
	return id, nil
}

