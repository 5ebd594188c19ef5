package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealflow/internal/app"
	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/testutil"
	"github.com/thenoetrevino/dealflow/internal/types"
)

func newTestApp(t *testing.T, user types.UserID) *app.App {
	t.Helper()
	a, err := app.New(testutil.BuiltinSeed(t), app.WithLogger(testutil.QuietLogger()), app.WithUser(user))
	require.NoError(t, err)
	return a
}

// ============================================================================
// Result Reporting Tests
// ============================================================================

func TestReasonExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason board.Reason
		want   int
	}{
		{board.ReasonApplied, ExitSuccess},
		{board.ReasonNoop, ExitSuccess},
		{board.ReasonAccessDenied, ExitDenied},
		{board.ReasonNotFound, ExitNotFound},
		{board.ReasonOutOfBounds, ExitValidation},
		{board.ReasonNoColumns, ExitValidation},
		{board.ReasonConflict, ExitValidation},
		{board.ReasonInvariant, ExitError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReasonExitCode(tt.reason), string(tt.reason))
	}
}

func TestReportResult_Applied(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, "admin123")
	res := a.Store.DuplicateCompany(a.CurrentUser(), board.DuplicateRequest{
		CompanyID:        "company-1",
		SourcePipelineID: "mainPipeline",
		TargetPipelineID: "secondaryPipeline",
		Linked:           true,
	})
	require.True(t, res.Applied)

	f, out, _ := newTestFormatter(true, false)
	require.NoError(t, ReportResult(f, res))

	var result struct {
		Success bool       `json:"success"`
		Data    ResultView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "duplicate", result.Data.Operation)
	assert.Equal(t, "applied", result.Data.Reason)
	assert.Equal(t, []string{"secondaryPipeline"}, result.Data.Changed)
	assert.Equal(t, string(res.CompanyID), result.Data.CompanyID)
	assert.Equal(t, int64(1), result.Data.Version)
}

func TestReportResult_QuietPrintsNewID(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, "admin123")
	res := a.Store.DuplicateCompany(a.CurrentUser(), board.DuplicateRequest{
		CompanyID:        "company-4",
		SourcePipelineID: "secondaryPipeline",
		TargetPipelineID: "mainPipeline",
	})
	require.True(t, res.Applied)

	f, out, _ := newTestFormatter(false, true)
	require.NoError(t, ReportResult(f, res))
	assert.Equal(t, string(res.CompanyID)+"\n", out.String())
}

func TestReportResult_Refused(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, "user123")
	res := a.Store.MoveCompany(a.CurrentUser(), "company-4", "secondaryPipeline", "mainPipeline")
	require.True(t, res.Blocked())

	f, _, errOut := newTestFormatter(false, false)
	err := ReportResult(f, res)
	require.Error(t, err)

	assert.Equal(t, ExitDenied, ExitCode(err))
	assert.True(t, Reported(err))
	assert.ErrorIs(t, err, board.ErrAccessDenied)
	assert.Contains(t, errOut.String(), "access denied")
	assert.Contains(t, errOut.String(), "Suggestion")
}

func TestReportResult_NoopSucceeds(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, "admin123")
	res := a.Store.MoveCompany(a.CurrentUser(), "company-1", "mainPipeline", "mainPipeline")
	require.Equal(t, board.ReasonNoop, res.Reason)

	f, out, _ := newTestFormatter(false, false)
	require.NoError(t, ReportResult(f, res))
	assert.Contains(t, out.String(), "nothing to do")
}

// ============================================================================
// Exit Code / Context Tests
// ============================================================================

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("boom")))

	wrapped := Exit(ExitNotFound, board.ErrNotFound)
	assert.Equal(t, ExitNotFound, ExitCode(wrapped))
	assert.Equal(t, board.ErrNotFound.Error(), wrapped.Error())
	assert.False(t, Reported(errors.New("plain")))
	assert.Equal(t, "exit status 2", Exit(ExitUsage, nil).Error())
}

func TestGetCLIFromContext(t *testing.T) {
	t.Parallel()

	_, err := GetCLIFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoCLI)

	_, err = GetCLIFromContext(WithCLI(context.Background(), &CLI{}))
	assert.ErrorIs(t, err, ErrNoCLI)

	c := &CLI{App: newTestApp(t, "user123")}
	got, err := GetCLIFromContext(WithCLI(context.Background(), c))
	require.NoError(t, err)
	assert.Same(t, c, got)
}
