package script

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/cli/styles"
	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/metrics"
)

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a sequence of board commands in one session",
		Long: `Run the steps of a YAML script, in order, against one board. Changes
made by a step are visible to every later step. Use "-" to read the
script from stdin.

Steps hold one action each: switch_user, logout, reorder, move, duplicate,
notes, delete or show. A step passes when it succeeds, or when its
outcome matches its expect field.

Example script:
  steps:
    - switch_user: admin123
    - duplicate: {company: company-1, from: mainPipeline, to: secondaryPipeline, linked: true, as: copy}
    - notes: {company: $copy, notes: "hot lead"}
    - switch_user: user123
    - delete: {company: company-4, pipeline: secondaryPipeline}
      expect: access_denied
    - show: {pipeline: secondaryPipeline}

Examples:
  dealflow run demo.yaml
  dealflow run demo.yaml --events --metrics
  cat demo.yaml | dealflow run - --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runScript,
	}

	cmd.Flags().Bool("stop-on-failure", false, "Stop at the first failed step")
	cmd.Flags().Bool("events", false, "Print board change events after each step")
	cmd.Flags().Bool("metrics", false, "Print mutation metrics after the run")
	cli.AddOutputFlags(cmd)

	return cmd
}

// EventView is the JSON shape of a board change event
type EventView struct {
	Type       string    `json:"type"`
	Operation  string    `json:"operation"`
	Pipelines  []string  `json:"pipelines"`
	SequenceID int64     `json:"sequence_id"`
	Timestamp  time.Time `json:"timestamp"`
}

func newEventView(e events.Event) EventView {
	v := EventView{
		Type:       string(e.Type),
		Operation:  e.Operation,
		SequenceID: e.SequenceID,
		Timestamp:  e.Timestamp,
	}
	for _, id := range e.PipelineIDs {
		v.Pipelines = append(v.Pipelines, string(id))
	}
	return v
}

// RunOutput is the JSON shape of a whole run
type RunOutput struct {
	Steps  []StepReport `json:"steps"`
	Events []EventView  `json:"events,omitempty"`
	Failed int          `json:"failed"`
}

func runScript(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Setup(cmd)
	if err != nil {
		return err
	}

	stopOnFailure, _ := cmd.Flags().GetBool("stop-on-failure")
	showEvents, _ := cmd.Flags().GetBool("events")
	showMetrics, _ := cmd.Flags().GetBool("metrics")

	s, err := load(cmd, args[0])
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_SCRIPT", err.Error(),
			"Each step needs exactly one action; see 'dealflow run --help'"); fmtErr != nil {
			return fmtErr
		}
		return cli.Exit(cli.ExitDataErr, err)
	}

	a := cliInstance.App
	var eventsCh <-chan events.Event
	if showEvents {
		ch, cancel := a.Events.Subscribe("")
		defer cancel()
		eventsCh = ch
	}

	out := cmd.OutOrStdout()
	output := RunOutput{}

	runner := NewRunner(a)
	runner.StopOnFailure = stopOnFailure
	runner.OnStep = func(report StepReport) {
		var pending []events.Event
		if eventsCh != nil {
			pending = drain(eventsCh)
			for _, e := range pending {
				output.Events = append(output.Events, newEventView(e))
			}
		}
		if formatter.JSON || formatter.Quiet {
			return
		}
		printStep(out, report)
		for _, e := range pending {
			fmt.Fprintf(out, "    event #%d %s %s\n", e.SequenceID, e.Operation, joinPipelines(e))
		}
	}

	reports, runErr := runner.Run(cmd.Context(), s)
	output.Steps = reports
	for _, r := range reports {
		if !r.Passed {
			output.Failed++
		}
	}

	if formatter.JSON {
		if err := formatter.Success(output); err != nil {
			return err
		}
	} else if formatter.Quiet {
		fmt.Fprintf(out, "%d/%d\n", len(reports)-output.Failed, len(reports))
	} else {
		fmt.Fprintf(out, "%d of %d steps passed\n", len(reports)-output.Failed, len(reports))
	}

	if showMetrics && !formatter.JSON && a.Registry != nil {
		if err := metrics.WriteText(out, a.Registry); err != nil {
			return err
		}
	}

	if runErr != nil {
		if errors.Is(runErr, ErrStepFailed) {
			return cli.Exit(cli.ExitError, runErr)
		}
		return runErr
	}
	return nil
}

func load(cmd *cobra.Command, path string) (*Script, error) {
	if path == "-" {
		return Parse(cmd.InOrStdin())
	}
	return LoadFile(path)
}

func drain(ch <-chan events.Event) []events.Event {
	var pending []events.Event
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return pending
			}
			pending = append(pending, e)
		default:
			return pending
		}
	}
}

func printStep(w io.Writer, r StepReport) {
	mark := styles.SuccessStyle.Render("✓")
	if !r.Passed {
		mark = styles.ErrorStyle.Render("✗")
	}

	label := r.Action
	if r.Name != "" {
		label = r.Name
	}
	fmt.Fprintf(w, "%s [%d] %s", mark, r.Index, label)
	if r.Result != nil {
		fmt.Fprintf(w, ": %s", r.Result.Reason)
		if r.Result.CompanyID != "" {
			fmt.Fprintf(w, " %s", r.Result.CompanyID)
		}
	}
	if r.User != "" {
		fmt.Fprintf(w, " (as %s)", r.User)
	}
	fmt.Fprintln(w)

	if r.Error != "" && !r.Passed {
		fmt.Fprintf(w, "    %s\n", r.Error)
	}
	if r.Result != nil && len(r.Result.Skipped) > 0 {
		fmt.Fprintf(w, "    skipped: %s\n", strings.Join(r.Result.Skipped, ", "))
	}
	if r.View != nil {
		fmt.Fprintln(w, styles.RenderBoard(*r.View))
	}
}

func joinPipelines(e events.Event) string {
	ids := make([]string, len(e.PipelineIDs))
	for i, id := range e.PipelineIDs {
		ids[i] = string(id)
	}
	return strings.Join(ids, ", ")
}
