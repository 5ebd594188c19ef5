// Package cmd assembles the dealflow command tree
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/app"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/cli/company"
	"github.com/thenoetrevino/dealflow/internal/cli/export"
	"github.com/thenoetrevino/dealflow/internal/cli/guide"
	"github.com/thenoetrevino/dealflow/internal/cli/pipeline"
	"github.com/thenoetrevino/dealflow/internal/cli/script"
	"github.com/thenoetrevino/dealflow/internal/cli/styles"
	"github.com/thenoetrevino/dealflow/internal/cli/use"
	"github.com/thenoetrevino/dealflow/internal/config"
	"github.com/thenoetrevino/dealflow/internal/logging"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// standalone marks commands that run without loading a board
const standalone = "standalone"

// NewRootCmd builds the dealflow command tree
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "dealflow",
		Short: "Dealflow - permission-aware pipeline boards",
		Long: `Dealflow manages investment pipelines as kanban boards. Every change is
checked against the acting user's access to the pipelines it touches.

The board is loaded from the configured seed when a command starts and
lives for that command only; use 'dealflow run' for multi-step sessions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[standalone] == "true" {
				return nil
			}
			if _, err := cli.GetCLIFromContext(cmd.Context()); err == nil {
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logCloser, err = logging.Init(cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			styles.Init(cfg.ColorScheme)

			var opts []app.Option
			if cmd.Flags().Changed("user") {
				userID, _ := cmd.Flags().GetString("user")
				opts = append(opts, app.WithUser(types.UserID(userID)))
			}

			cliInstance, err := cli.NewCLI(cmd.Context(), cfg, opts...)
			if err != nil {
				return err
			}
			cmd.SetContext(cli.WithCLI(cmd.Context(), cliInstance))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cliInstance, err := cli.GetCLIFromContext(cmd.Context()); err == nil {
				if err := cliInstance.Close(); err != nil {
					slog.Error("failed to close CLI", "error", err)
				}
			}
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default: $XDG_CONFIG_HOME/dealflow/config.yaml)")
	rootCmd.PersistentFlags().String("user", "", "Act as this user (overrides DEALFLOW_USER)")
	rootCmd.PersistentFlags().String("seed", "", "Seed file to load (overrides DEALFLOW_SEED)")
	rootCmd.PersistentFlags().String("seed-driver", "", "Seed driver: builtin, yaml or sqlite")

	guideCmd := guide.GuideCmd()
	guideCmd.Annotations = map[string]string{standalone: "true"}

	rootCmd.AddCommand(pipeline.PipelineCmd())
	rootCmd.AddCommand(company.CompanyCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(script.RunCmd())
	rootCmd.AddCommand(export.ExportCmd())
	rootCmd.AddCommand(guideCmd)

	return rootCmd
}

// Execute runs the command tree against the process arguments
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed.Path, _ = cmd.Flags().GetString("seed")
	}
	if cmd.Flags().Changed("seed-driver") {
		cfg.Seed.Driver, _ = cmd.Flags().GetString("seed-driver")
	}
	return cfg, nil
}
