package main

import (
	"io"

	"github.com/spf13/cobra"

	"ai-governance-controls/internal/compare"
	"ai-governance-controls/internal/evaluate"
	"ai-governance-controls/internal/output"
)

func diffCmd(a *app) *cobra.Command {
	var (
		baseline    string
		profileFlag string
		controls    string
		format      string
		outPath     string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare a profile against a baseline profile",
		Long: `Diff evaluates both profiles against the same catalog and reports
controls that started failing, controls that were resolved and the change
in pass rate and weighted score. Exits 1 when any control regressed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "json"); err != nil {
				return err
			}
			if baseline == "" {
				return failf("ERROR: --baseline is required")
			}
			ctls, err := a.loadControls(a.catalogPath(controls))
			if err != nil {
				return err
			}
			currPath := a.profilePath(profileFlag)
			prevRoot, err := a.loadProfile(baseline)
			if err != nil {
				return err
			}
			currRoot, err := a.loadProfile(currPath)
			if err != nil {
				return err
			}
			e, err := a.evaluator()
			if err != nil {
				return err
			}

			prev := e.Evaluate(ctls, prevRoot, evaluate.Options{})
			curr := e.Evaluate(ctls, currRoot, evaluate.Options{})
			cmp := compare.Diff(baseline, prev, currPath, curr)
			a.logger.Info("Profiles compared", "new_failures", len(cmp.NewFailures), "resolved", len(cmp.Resolved))

			render := func(w io.Writer) error { return output.WriteComparisonTable(w, cmp, styles(cmd, outPath)) }
			if format == "json" {
				render = func(w io.Writer) error { return output.WriteJSON(w, cmp) }
			}
			if err := emit(cmd, outPath, quiet, render); err != nil {
				return err
			}
			if compare.Regressed(cmp) {
				return exitCode(exitFindings)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseline, "baseline", "", "Baseline profile to compare against")
	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Current system profile")
	cmd.Flags().StringVarP(&controls, "controls", "c", "", "Path to controls YAML (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the diff to this file instead of stdout")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress console messages")
	return cmd
}
