package output

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/risk"
)

var (
	wideRule   = strings.Repeat("=", 80)
	narrowRule = strings.Repeat("=", 70)
	shortRule  = strings.Repeat("=", 60)
)

// WriteTable prints the evaluation for a console.
func WriteTable(w io.Writer, e Evaluation, st Styles) error {
	var buf bytes.Buffer
	writeEvaluation(&buf, e, st)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeEvaluation(buf *bytes.Buffer, e Evaluation, st Styles) {
	p := func(f string, a ...any) { fmt.Fprintf(buf, f+"\n", a...) }
	s := e.Summary

	p("%s", wideRule)
	p("%s", st.Title.Render("AI GOVERNANCE CONTROL EVALUATION REPORT"))
	p("%s", wideRule)
	p("System: %s", e.SystemName)
	p("Evaluated: %s", e.EvaluatedAt.Format(displayTime))
	p("Controls Evaluated: %d", s.Total)
	p("%s", wideRule)

	p("\n%s\n", st.Heading.Render("## Control Results"))
	p("| ID | Control | Severity | Result |")
	p("|------|---------|----------|--------|")
	for _, v := range e.Verdicts {
		p("| %s | %s | %s | %s |", v.ID, v.Title, v.Severity, st.status(v.Passed))
	}

	p("\n%s", wideRule)
	p("%s\n", st.Heading.Render("## Summary"))
	p("**Overall Pass Rate:** %s (%d/%d)", st.Bold.Render(pct(s.PassRate)+"%"), s.Passed, s.Total)
	p("**Weighted Score:** %s", st.Bold.Render(pct(s.WeightedScore)+"%"))
	p("  %s\n", st.Muted.Render("_(High-severity controls weighted 3x, medium 2x, low 1x)_"))

	p("%s\n", st.Heading.Render("### By Severity"))
	writeSeverityTable(buf, s)

	failed := model.Failed(e.Verdicts)
	if len(failed) == 0 {
		return
	}
	p("\n%s", wideRule)
	p("%s\n", st.Fail.Render("## Failed Controls - Remediation Required"))
	for _, v := range failed {
		p("### %s: %s", v.ID, v.Title)
		writeFailureDetail(buf, v, "  ")
		p("")
	}
}

// WriteClassificationTable prints the risk tier, its reasons and
// obligations, and the high-risk checklist when present.
func WriteClassificationTable(w io.Writer, c Classification, st Styles) error {
	var buf bytes.Buffer
	writeClassification(&buf, c, st)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeClassification(buf *bytes.Buffer, c Classification, st Styles) {
	p := func(f string, a ...any) { fmt.Fprintf(buf, f+"\n", a...) }
	desc := c.SystemDescription
	if desc == "" {
		desc = "N/A"
	}
	tier := c.Result.Tier

	p("%s", narrowRule)
	p("%s", st.Title.Render("EU AI ACT RISK TIER CLASSIFICATION"))
	p("%s", narrowRule)
	p("System: %s", c.SystemName)
	p("Description: %s", desc)
	p("%s", narrowRule)

	p("\n%s\n", st.Heading.Render("## Classification Result"))
	p("**Risk Tier:** %s %s", tierIcon(tier), st.tier(tier).Render(strings.ToUpper(string(tier))))
	if c.Result.DeclaredTier != "" && !strings.EqualFold(c.Result.DeclaredTier, string(tier)) {
		p("%s", st.Muted.Render("(profile declares "+c.Result.DeclaredTier+")"))
	}

	p("\n%s\n", st.Heading.Render("### Classification Reasons"))
	for _, r := range c.Result.Reasons {
		p("- %s", r)
	}
	p("\n%s\n", st.Heading.Render("### Applicable Obligations"))
	for _, o := range c.Result.Obligations {
		p("- %s", o)
	}

	if c.Compliance == nil {
		return
	}
	p("\n%s", narrowRule)
	p("%s", st.Heading.Render("## HIGH-RISK COMPLIANCE CHECK"))
	p("%s", narrowRule)
	p("\n**Compliance Rate:** %s\n", st.Bold.Render(pct(c.Compliance.ComplianceRate)+"%"))
	p("| Requirement | Status |")
	p("|-------------|--------|")
	for _, ch := range c.Compliance.Checks {
		mark := st.Pass.Render("✅")
		if !ch.Passed {
			mark = st.Fail.Render("❌")
		}
		p("| %s | %s |", ch.Label, mark)
	}
	if gaps := c.Compliance.Checks.Gaps(); len(gaps) > 0 {
		p("\n%s\n", st.Heading.Render("### Compliance Gaps"))
		for _, g := range gaps {
			p("- ❌ %s: %s", g.Label, risk.GapMessage)
		}
	}
}

// WriteValidationTable prints a catalog validation result. quiet drops
// the preamble and the summary block.
func WriteValidationTable(w io.Writer, res model.ValidationResult, path string, quiet bool, st Styles) error {
	var buf bytes.Buffer
	p := func(f string, a ...any) { fmt.Fprintf(&buf, f+"\n", a...) }

	if !quiet {
		p("Validating: %s\n", path)
		p("%s", shortRule)
		p("Found %d controls\n", res.ControlsCount)
	}
	p("%s", st.Title.Render("VALIDATION RESULTS"))
	p("%s", shortRule)

	if res.Error != "" {
		p("\n%s", st.Fail.Render("ERROR: "+res.Error))
		_, err := w.Write(buf.Bytes())
		return err
	}

	if len(res.Errors) > 0 {
		p("\n%s", st.Fail.Render(fmt.Sprintf("ERRORS (%d):", len(res.Errors))))
		for _, is := range res.Errors {
			p("   [%s] %s", is.ControlID, is.Message)
		}
	}
	if len(res.Warnings) > 0 {
		p("\n%s", st.Warn.Render(fmt.Sprintf("WARNINGS (%d):", len(res.Warnings))))
		for _, is := range res.Warnings {
			p("   [%s] %s", is.ControlID, is.Message)
		}
	}
	switch {
	case res.Valid && len(res.Warnings) == 0:
		p("\n%s", st.Pass.Render("All controls passed validation!"))
	case res.Valid:
		p("\n%s", st.Warn.Render(fmt.Sprintf("Validation passed with %d warnings", len(res.Warnings))))
	}

	if !quiet {
		p("\n%s", shortRule)
		p("SUMMARY")
		p("  Total controls: %d", res.ControlsCount)
		p("  Errors: %d", len(res.Errors))
		p("  Warnings: %d", len(res.Warnings))
		if len(res.SeverityDistribution) > 0 {
			p("\n  Severity Distribution:")
			for _, sev := range distributionOrder(res.SeverityDistribution) {
				p("    %s: %d", sev, res.SeverityDistribution[sev])
			}
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// distributionOrder lists known severities highest first, then any other
// raw values in key order.
func distributionOrder(dist map[string]int) []string {
	var out []string
	seen := map[string]bool{}
	for i := len(model.Severities) - 1; i >= 0; i-- {
		k := string(model.Severities[i])
		if _, ok := dist[k]; ok {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range dist {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// WriteReportTable prints the combined report: executive summary, the full
// evaluation and the classification.
func WriteReportTable(w io.Writer, r model.Report, e Evaluation, c Classification, st Styles) error {
	var buf bytes.Buffer
	p := func(f string, a ...any) { fmt.Fprintf(&buf, f+"\n", a...) }
	x := r.ExecutiveSummary

	p("%s", narrowRule)
	p("%s", st.Title.Render("COMPREHENSIVE AI GOVERNANCE COMPLIANCE REPORT"))
	p("%s", narrowRule)
	p("System: %s", r.Metadata.SystemName)
	p("Generated: %s", e.EvaluatedAt.Format(displayTime))
	p("Report ID: %s", st.Muted.Render(r.Metadata.ReportID))
	p("%s", narrowRule)

	p("\n%s\n", st.Heading.Render("## Executive Summary"))
	p("- **Overall Pass Rate:** %s%%", pct(x.OverallPassRate))
	p("- **Weighted Score:** %s%%", pct(x.WeightedScore))
	p("- **EU AI Act Risk Tier:** %s", st.tier(x.RiskTier).Render(strings.ToUpper(string(x.RiskTier))))
	p("- **High-Severity Failures:** %d", x.HighSeverityFailures)
	p("\n**Recommendation:** %s", st.Bold.Render(x.Recommendation))

	p("\n%s\n", st.Heading.Render("## Control Evaluation"))
	writeEvaluation(&buf, e, st)
	p("\n")
	writeClassification(&buf, c, st)

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteBatchTable prints one line per profile of a batch run.
func WriteBatchTable(w io.Writer, res model.BatchResult, st Styles) error {
	var buf bytes.Buffer
	p := func(f string, a ...any) { fmt.Fprintf(&buf, f+"\n", a...) }

	p("%s", wideRule)
	p("%s", st.Title.Render("BATCH EVALUATION SUMMARY"))
	p("%s", wideRule)
	p("\n| Profile | System | Pass Rate | Weighted | High Failures |")
	p("|---------|--------|-----------|----------|---------------|")
	for _, it := range res.Items {
		if it.Error != "" {
			p("| %s | %s |", clip(it.Profile, 20), st.Fail.Render("ERROR: "+it.Error))
			continue
		}
		high := fmt.Sprint(it.HighFailures)
		if it.HighFailures > 0 {
			high = st.Fail.Render(high)
		}
		p("| %s | %s | %s%% | %s%% | %s |", clip(it.Profile, 20), clip(it.SystemName, 15), pct(it.PassRate), pct(it.WeightedScore), high)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteComparisonTable prints the delta between two evaluations.
func WriteComparisonTable(w io.Writer, c model.Comparison, st Styles) error {
	var buf bytes.Buffer
	p := func(f string, a ...any) { fmt.Fprintf(&buf, f+"\n", a...) }

	p("%s", narrowRule)
	p("%s", st.Title.Render("AI GOVERNANCE EVALUATION DIFF"))
	p("%s", narrowRule)
	p("Baseline: %s", c.Baseline)
	p("Current:  %s", c.Current)
	p("%s", narrowRule)

	p("\n| Metric | Baseline | Current | Change |")
	p("|--------|----------|---------|--------|")
	p("| Pass Rate | %s%% | %s%% | %s |", pct(c.PassRate.From), pct(c.PassRate.To), st.trend(c.PassRate))
	p("| Weighted Score | %s%% | %s%% | %s |", pct(c.WeightedScore.From), pct(c.WeightedScore.To), st.trend(c.WeightedScore))

	p("\n%s\n", st.Fail.Render(fmt.Sprintf("### New Failures (%d)", len(c.NewFailures))))
	for _, r := range c.NewFailures {
		p("- %s: %s [%s]", r.ID, r.Title, r.Severity)
	}
	p("\n%s\n", st.Pass.Render(fmt.Sprintf("### Resolved (%d)", len(c.Resolved))))
	for _, r := range c.Resolved {
		p("- %s: %s [%s]", r.ID, r.Title, r.Severity)
	}
	if len(c.Added) > 0 {
		p("\nControls only in current: %s", strings.Join(c.Added, ", "))
	}
	if len(c.Removed) > 0 {
		p("\nControls only in baseline: %s", strings.Join(c.Removed, ", "))
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func (s Styles) trend(t model.Trend) string {
	sign := ""
	if t.DeltaScore > 0 {
		sign = "+"
	}
	text := sign + pct(t.DeltaScore)
	switch t.Direction {
	case model.Up:
		return s.Pass.Render("▲ " + text)
	case model.Down:
		return s.Fail.Render("▼ " + text)
	default:
		return s.Muted.Render("= " + text)
	}
}

// clip truncates s to n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
