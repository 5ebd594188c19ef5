// Package export holds the command that writes the board out as a seed
package export

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/seed"
)

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board and users out as a seed",
		Long: `Write the loaded board, its links and the user directory as a seed that
'seed.path' in the config (or DEALFLOW_SEED) can point at.

YAML goes to stdout unless --out is given. SQLite needs --out; an existing
database is migrated and its contents replaced.

Examples:
  dealflow export > board.yaml
  dealflow export --format sqlite --out board.db
  DEALFLOW_SEED=board.db dealflow pipeline list
`,
		RunE: runExport,
	}

	cmd.Flags().String("format", seed.DriverYAML, "Seed format: yaml or sqlite")
	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout for yaml)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	sd := cliInstance.App.Export()

	switch strings.ToLower(format) {
	case seed.DriverYAML:
		if outPath == "" {
			return seed.WriteYAML(cmd.OutOrStdout(), sd)
		}
		return writeYAMLFile(outPath, sd)

	case seed.DriverSQLite:
		if outPath == "" {
			err := fmt.Errorf("--out is required for sqlite")
			if fmtErr := formatter.Error("MISSING_OUTPUT", err.Error()); fmtErr != nil {
				return fmtErr
			}
			return cli.Exit(cli.ExitUsage, err)
		}

		db, err := seed.OpenSQLite(cmd.Context(), outPath)
		if err != nil {
			if fmtErr := formatter.Error("SQLITE_ERROR", err.Error()); fmtErr != nil {
				return fmtErr
			}
			return cli.Exit(cli.ExitError, err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("failed to close seed database", "error", err)
			}
		}()

		if err := seed.WriteSQLite(cmd.Context(), db, sd); err != nil {
			if fmtErr := formatter.Error("SQLITE_ERROR", err.Error()); fmtErr != nil {
				return fmtErr
			}
			return cli.Exit(cli.ExitError, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d pipelines to %s\n", len(sd.Pipelines), outPath)
		return nil

	default:
		err := fmt.Errorf("unknown format %q", format)
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_FORMAT", err.Error(), "Use --format yaml or --format sqlite"); fmtErr != nil {
			return fmtErr
		}
		return cli.Exit(cli.ExitUsage, err)
	}
}

func writeYAMLFile(path string, sd *seed.Seed) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return seed.WriteYAML(f, sd)
}
