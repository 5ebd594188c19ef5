package cli

import (
	"github.com/spf13/cobra"
)

// Setup returns the CLI stored in the command's context and a formatter for
// its output flags. A missing CLI is reported before the error is returned.
func Setup(cmd *cobra.Command) (*CLI, *OutputFormatter, error) {
	formatter := NewFormatter(cmd)

	c, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			return nil, formatter, fmtErr
		}
		return nil, formatter, Exit(ExitError, err)
	}
	return c, formatter, nil
}

// NotFound reports a missing resource and returns the matching exit error
func NotFound(f *OutputFormatter, code, message, suggestion string, err error) error {
	if fmtErr := f.ErrorWithSuggestion(code, message, suggestion); fmtErr != nil {
		return fmtErr
	}
	return Exit(ExitNotFound, err)
}
