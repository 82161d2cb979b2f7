package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ai-governance-controls/internal/batch"
	"ai-governance-controls/internal/evaluate"
	"ai-governance-controls/internal/metrics"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/output"
)

// evaluateFlags are shared by evaluate and watch.
type evaluateFlags struct {
	profile     string
	controls    string
	format      string
	output      string
	severity    string
	failedOnly  bool
	batch       string
	quiet       bool
	metricsFile string
	redact      bool
}

func (f *evaluateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "Path to system profile (JSON or YAML)")
	cmd.Flags().StringVarP(&f.controls, "controls", "c", "", "Path to controls YAML (default from config)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "table", "Output format: table, markdown, json, csv, html")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&f.severity, "severity", "", "Only evaluate controls at or above this severity (low, medium, high, critical)")
	cmd.Flags().BoolVar(&f.failedOnly, "failed-only", false, "Only show failed controls")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Suppress console messages (useful with --output)")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus gauges to this textfile")
	cmd.Flags().BoolVar(&f.redact, "redact", false, "Mask system identity and evidence values")
}

func (f *evaluateFlags) options(a *app) (evaluate.Options, error) {
	sev := f.severity
	if sev == "" {
		sev = a.cfg.Evaluate.MinSeverity
	}
	if sev != "" && !model.Severity(sev).Valid() {
		return evaluate.Options{}, failf("ERROR: unknown severity %q", sev)
	}
	return evaluate.Options{
		MinSeverity: sev,
		FailedOnly:  f.failedOnly || a.cfg.Evaluate.FailedOnly,
	}, nil
}

func evaluateCmd(a *app) *cobra.Command {
	f := &evaluateFlags{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a system profile against the controls",
		Long: `Evaluate resolves each control's evidence path in the profile, scores
the results and lists remediation for every failure. Exits 1 when any
high-severity control fails, or in batch mode when any profile fails to
load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(f.format, "table", "markdown", "json", "csv", "html"); err != nil {
				return err
			}
			if f.batch != "" {
				return a.runBatch(cmd, f)
			}
			summary, err := a.evaluateOnce(cmd, f)
			if err != nil {
				return err
			}
			if high := summary.HighFailures(); high > 0 {
				if !f.quiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "\nWARNING: %d high-severity control(s) failed\n", high)
				}
				return exitCode(exitFindings)
			}
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&f.batch, "batch", "", "Evaluate every profile in a directory or glob")
	return cmd
}

// evaluateOnce runs one evaluation and renders it.
func (a *app) evaluateOnce(cmd *cobra.Command, f *evaluateFlags) (model.ScoreSummary, error) {
	opts, err := f.options(a)
	if err != nil {
		return model.ScoreSummary{}, err
	}
	controls, err := a.loadControls(a.catalogPath(f.controls))
	if err != nil {
		return model.ScoreSummary{}, err
	}
	root, err := a.loadProfile(a.profilePath(f.profile))
	if err != nil {
		return model.ScoreSummary{}, err
	}
	e, err := a.evaluator()
	if err != nil {
		return model.ScoreSummary{}, err
	}

	ev := output.NewEvaluation(root, e.Evaluate(controls, root, opts), a.now())
	a.logger.Info("Profile evaluated", "system", ev.SystemName, "controls", ev.Summary.Total, "failed", ev.Summary.Failed)

	if path := a.metricsPath(f.metricsFile); path != "" {
		rec := metrics.NewRecorder()
		rec.ObserveEvaluation(ev.SystemName, ev.Summary)
		if err := rec.WriteTextfile(path); err != nil {
			return model.ScoreSummary{}, failf("ERROR: write metrics: %v", err)
		}
	}

	if f.redact {
		ev = output.RedactEvaluation(ev)
	}
	st := styles(cmd, f.output)
	var render func(io.Writer) error
	switch f.format {
	case "json":
		render = func(w io.Writer) error { return output.WriteEvaluationJSON(w, ev) }
	case "markdown":
		render = func(w io.Writer) error { return output.WriteMarkdown(w, ev) }
	case "csv":
		render = func(w io.Writer) error { return output.WriteCSV(w, ev) }
	case "html":
		render = func(w io.Writer) error { return output.WriteHTML(w, ev) }
	default:
		render = func(w io.Writer) error { return output.WriteTable(w, ev, st) }
	}
	if err := emit(cmd, f.output, f.quiet, render); err != nil {
		return model.ScoreSummary{}, err
	}
	return ev.Summary, nil
}

func (a *app) runBatch(cmd *cobra.Command, f *evaluateFlags) error {
	opts, err := f.options(a)
	if err != nil {
		return err
	}
	controls, err := a.loadControls(a.catalogPath(f.controls))
	if err != nil {
		return err
	}
	paths, err := batch.Discover(f.batch)
	if err != nil {
		if errors.Is(err, batch.ErrNoProfiles) {
			return failf("ERROR: Batch directory not found or empty: %s", f.batch)
		}
		return failf("ERROR: %v", err)
	}
	e, err := a.evaluator()
	if err != nil {
		return err
	}

	res, err := batch.NewRunner(e).Run(cmd.Context(), paths, controls, opts)
	if err != nil {
		return failf("ERROR: batch interrupted: %v", err)
	}

	if path := a.metricsPath(f.metricsFile); path != "" {
		rec := metrics.NewRecorder()
		for _, it := range res.Items {
			if it.Error != "" {
				continue
			}
			rec.ObserveEvaluation(it.SystemName, model.ScoreSummary{
				Total:         it.Passed + it.Failed,
				Passed:        it.Passed,
				Failed:        it.Failed,
				PassRate:      it.PassRate,
				WeightedScore: it.WeightedScore,
			})
		}
		if err := rec.WriteTextfile(path); err != nil {
			return failf("ERROR: write metrics: %v", err)
		}
	}

	render := func(w io.Writer) error { return output.WriteBatchTable(w, res, styles(cmd, f.output)) }
	if f.format == "json" {
		render = func(w io.Writer) error { return output.WriteJSON(w, res) }
	}
	if err := emit(cmd, f.output, f.quiet, render); err != nil {
		return err
	}

	if res.Failing() {
		return exitCode(exitFindings)
	}
	return nil
}
