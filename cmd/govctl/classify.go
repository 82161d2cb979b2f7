package main

import (
	"io"

	"github.com/spf13/cobra"

	"ai-governance-controls/internal/metrics"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/output"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/risk"
)

func classifyCmd(a *app) *cobra.Command {
	var (
		profileFlag string
		format      string
		outPath     string
		quiet       bool
		redact      bool
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a system under the EU AI Act risk tiers",
		Long: `Classify assigns unacceptable, high, limited or minimal from the
profile's text and lists the obligations of that tier. High-tier systems
are also checked against the high-risk requirements. Exits 2 for a
prohibited system and 1 for a high-tier system with compliance gaps.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "json"); err != nil {
				return err
			}
			root, err := a.loadProfile(a.profilePath(profileFlag))
			if err != nil {
				return err
			}
			c, err := a.classifier()
			if err != nil {
				return err
			}

			doc := a.classify(c, root)
			a.logger.Info("Profile classified", "system", doc.SystemName, "tier", doc.Result.Tier)

			if path := a.metricsPath(metricsFile); path != "" {
				if err := writeClassificationMetrics(path, doc); err != nil {
					return err
				}
			}
			if redact {
				doc = output.RedactClassification(doc)
			}

			render := func(w io.Writer) error {
				return output.WriteClassificationTable(w, doc, styles(cmd, outPath))
			}
			if format == "json" {
				render = func(w io.Writer) error { return output.WriteClassificationJSON(w, doc) }
			}
			if err := emit(cmd, outPath, quiet, render); err != nil {
				return err
			}
			return exitCode(classificationExit(doc))
		},
	}

	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Path to system profile (JSON or YAML)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the result to this file instead of stdout")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress console messages")
	cmd.Flags().BoolVar(&redact, "redact", false, "Mask system identity")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus gauges to this textfile")
	return cmd
}

func (a *app) classify(c *risk.Classifier, root profile.Value) output.Classification {
	doc := output.Classification{
		SystemName:        profile.Field(root, "system_name", "Unknown"),
		SystemDescription: profile.Field(root, "system_description", ""),
		ClassifiedAt:      a.now(),
		Result:            c.Classify(root),
	}
	if doc.Result.Tier == model.TierHigh {
		cr := risk.CheckHighRisk(root)
		doc.Compliance = &cr
	}
	return doc
}

func classificationExit(doc output.Classification) int {
	switch {
	case doc.Result.Tier == model.TierUnacceptable:
		return exitProhibited
	case doc.Compliance != nil && doc.Compliance.ComplianceRate < 100:
		return exitFindings
	default:
		return exitOK
	}
}

func writeClassificationMetrics(path string, doc output.Classification) error {
	rec := metrics.NewRecorder()
	rec.ObserveClassification(doc.SystemName, doc.Result.Tier, doc.Compliance)
	if err := rec.WriteTextfile(path); err != nil {
		return failf("ERROR: write metrics: %v", err)
	}
	return nil
}
