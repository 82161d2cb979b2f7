package main

import (
	"io"

	"github.com/spf13/cobra"

	"ai-governance-controls/internal/evaluate"
	"ai-governance-controls/internal/metrics"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/output"
	"ai-governance-controls/internal/remediation"
	"ai-governance-controls/internal/report"
)

func reportCmd(a *app) *cobra.Command {
	var (
		profileFlag string
		controls    string
		format      string
		outPath     string
		quiet       bool
		redact      bool
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a combined evaluation and risk report",
		Long: `Report evaluates every control (no filters), classifies the system and
adds an executive summary with a recommendation. The html format is a
printable one-page summary with prioritised actions. Exits 2 for a
prohibited system and 1 when any high-severity control fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "json", "html"); err != nil {
				return err
			}
			ctls, err := a.loadControls(a.catalogPath(controls))
			if err != nil {
				return err
			}
			root, err := a.loadProfile(a.profilePath(profileFlag))
			if err != nil {
				return err
			}
			e, err := a.evaluator()
			if err != nil {
				return err
			}
			c, err := a.classifier()
			if err != nil {
				return err
			}

			rep := report.NewBuilder(e, c, report.WithClock(a.now)).Build(ctls, root)
			a.logger.Info("Report built", "report_id", rep.Metadata.ReportID, "tier", rep.ExecutiveSummary.RiskTier)

			if path := a.metricsPath(metricsFile); path != "" {
				rec := metrics.NewRecorder()
				rec.ObserveReport(rep)
				if err := rec.WriteTextfile(path); err != nil {
					return failf("ERROR: write metrics: %v", err)
				}
			}
			if redact {
				rep = output.Redact(rep)
			}

			var render func(io.Writer) error
			switch format {
			case "json":
				render = func(w io.Writer) error { return output.WriteJSON(w, rep) }
			case "html":
				verdicts := e.Evaluate(ctls, root, evaluate.Options{FailedOnly: true})
				plan := remediation.Plan(verdicts)
				render = func(w io.Writer) error { return output.WriteReportHTML(w, rep, plan) }
			default:
				ev := output.NewEvaluation(root, e.Evaluate(ctls, root, evaluate.Options{}), a.now())
				doc := a.classify(c, root)
				if redact {
					ev = output.RedactEvaluation(ev)
					doc = output.RedactClassification(doc)
				}
				render = func(w io.Writer) error {
					return output.WriteReportTable(w, rep, ev, doc, styles(cmd, outPath))
				}
			}
			if err := emit(cmd, outPath, quiet, render); err != nil {
				return err
			}
			return exitCode(reportExit(rep))
		},
	}

	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Path to system profile (JSON or YAML)")
	cmd.Flags().StringVarP(&controls, "controls", "c", "", "Path to controls YAML (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json, html")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress console messages")
	cmd.Flags().BoolVar(&redact, "redact", false, "Mask system identity")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus gauges to this textfile")
	return cmd
}

func reportExit(rep model.Report) int {
	switch {
	case rep.ExecutiveSummary.RiskTier == model.TierUnacceptable:
		return exitProhibited
	case rep.ExecutiveSummary.HighSeverityFailures > 0:
		return exitFindings
	default:
		return exitOK
	}
}
