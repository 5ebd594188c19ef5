package cli

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/cli/styles"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// ResultView is the JSON shape of a mutation outcome
type ResultView struct {
	Operation string   `json:"operation"`
	Applied   bool     `json:"applied"`
	Reason    string   `json:"reason"`
	Detail    string   `json:"detail,omitempty"`
	CompanyID string   `json:"company_id,omitempty"`
	Changed   []string `json:"changed,omitempty"`
	Skipped   []string `json:"skipped,omitempty"`
	Version   int64    `json:"version"`
}

// GetID returns the company acted on, for quiet output
func (v ResultView) GetID() string {
	return v.CompanyID
}

func (v ResultView) String() string {
	if !v.Applied {
		return fmt.Sprintf("• %s: nothing to do (%s)", v.Operation, v.Detail)
	}

	var b strings.Builder
	b.WriteString(styles.SuccessStyle.Render("✓"))
	fmt.Fprintf(&b, " %s", v.Operation)
	if v.CompanyID != "" {
		fmt.Fprintf(&b, " %s", v.CompanyID)
	}
	if len(v.Changed) > 0 {
		fmt.Fprintf(&b, " (changed: %s)", strings.Join(v.Changed, ", "))
	}
	if len(v.Skipped) > 0 {
		fmt.Fprintf(&b, "\n  skipped without full access: %s", strings.Join(v.Skipped, ", "))
	}
	return b.String()
}

// NewResultView converts a board result for output
func NewResultView(res board.Result) ResultView {
	v := ResultView{
		Operation: string(res.Operation),
		Applied:   res.Applied,
		Reason:    string(res.Reason),
		Detail:    res.Detail,
		CompanyID: string(res.CompanyID),
		Changed:   pipelineStrings(res.Changed),
		Skipped:   pipelineStrings(res.Skipped),
	}
	if res.Snapshot != nil {
		v.Version = res.Snapshot.Version
	}
	return v
}

// ReasonExitCode maps a mutation outcome to a process exit code
func ReasonExitCode(reason board.Reason) int {
	switch reason {
	case board.ReasonApplied, board.ReasonNoop:
		return ExitSuccess
	case board.ReasonAccessDenied:
		return ExitDenied
	case board.ReasonNotFound:
		return ExitNotFound
	case board.ReasonOutOfBounds, board.ReasonNoColumns, board.ReasonConflict:
		return ExitValidation
	default:
		return ExitError
	}
}

// ReportResult writes a mutation outcome and returns an *ExitCodeError when
// the mutation was refused
func ReportResult(f *OutputFormatter, res board.Result) error {
	err := res.Err()
	if err == nil {
		return f.Success(NewResultView(res))
	}

	if reportErr := f.ErrorWithSuggestion(string(res.Reason), err.Error(), suggestionFor(res.Reason)); reportErr != nil {
		return reportErr
	}
	return Exit(ReasonExitCode(res.Reason), err)
}

func suggestionFor(reason board.Reason) string {
	switch reason {
	case board.ReasonAccessDenied:
		return "Act as another user with --user, or check access with 'dealflow pipeline list'"
	case board.ReasonNotFound:
		return "Use 'dealflow pipeline show --id <pipeline>' to see ids"
	case board.ReasonOutOfBounds:
		return "Indices start at 0 and are checked against the current board"
	case board.ReasonNoColumns:
		return "The target pipeline needs at least one column"
	default:
		return ""
	}
}

func pipelineStrings(ids []types.PipelineID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
