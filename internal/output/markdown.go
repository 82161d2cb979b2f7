package output

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ai-governance-controls/internal/model"
)

const displayTime = "2006-01-02 15:04:05"

// WriteMarkdown renders the evaluation as a standalone Markdown document.
func WriteMarkdown(w io.Writer, e Evaluation) error {
	var buf bytes.Buffer
	p := func(f string, a ...any) { fmt.Fprintf(&buf, f+"\n", a...) }
	s := e.Summary

	p("# AI Governance Control Evaluation Report\n")
	p("**System:** %s\n", e.SystemName)
	p("**Evaluated:** %s\n", e.EvaluatedAt.Format(displayTime))
	p("**Controls Evaluated:** %d\n", s.Total)

	p("\n## Executive Summary\n")
	p("| Metric | Value |")
	p("|--------|-------|")
	p("| Overall Pass Rate | %s%% |", pct(s.PassRate))
	p("| Weighted Score | %s%% |", pct(s.WeightedScore))
	p("| Controls Passed | %d/%d |", s.Passed, s.Total)
	p("| High-Severity Failures | %d |", s.HighFailures())

	p("\n## Control Results\n")
	writeResultsTable(&buf, e.Verdicts)

	p("\n## Results by Severity\n")
	writeSeverityTable(&buf, s)

	failed := model.Failed(e.Verdicts)
	if len(failed) == 0 {
		p("\n## All Controls Passed\n")
		p("No remediation required.\n")
	} else {
		p("\n## Failed Controls - Remediation Required\n")
		for _, v := range failed {
			p("### %s: %s\n", v.ID, v.Title)
			writeFailureDetail(&buf, v, "")
			p("")
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeResultsTable(buf *bytes.Buffer, verdicts []model.Verdict) {
	buf.WriteString("| ID | Control | Severity | Result |\n")
	buf.WriteString("|------|---------|----------|--------|\n")
	for _, v := range verdicts {
		status := "✅ PASS"
		if !v.Passed {
			status = "❌ FAIL"
		}
		fmt.Fprintf(buf, "| %s | %s | %s | %s |\n", v.ID, v.Title, v.Severity, status)
	}
}

func writeSeverityTable(buf *bytes.Buffer, s model.ScoreSummary) {
	buf.WriteString("| Severity | Passed | Failed | Rate |\n")
	buf.WriteString("|----------|--------|--------|------|\n")
	for _, sev := range model.BucketSeverities {
		b, ok := s.BySeverity[sev]
		if !ok {
			continue
		}
		fmt.Fprintf(buf, "| %s | %d | %d | %s%% |\n", sev, b.Passed, b.Failed, pct(severityRate(b)))
	}
}

// writeFailureDetail lists one failed control. indent prefixes the numbered
// remediation steps.
func writeFailureDetail(buf *bytes.Buffer, v model.Verdict, indent string) {
	requirement := v.Requirement
	if requirement == "" {
		requirement = "N/A"
	}
	fmt.Fprintf(buf, "- **Severity:** %s\n", v.Severity)
	fmt.Fprintf(buf, "- **Requirement:** %s\n", requirement)
	fmt.Fprintf(buf, "- **Evidence Path:** `%s`\n", v.EvidencePath)
	fmt.Fprintf(buf, "- **Current Value:** `%s`\n", v.EvidenceValue.String())
	if len(v.NISTMapping) > 0 {
		fmt.Fprintf(buf, "- **NIST AI RMF:** %s\n", strings.Join(v.NISTMapping, ", "))
	}
	if v.EUArticle != "" {
		fmt.Fprintf(buf, "- **EU AI Act:** %s\n", v.EUArticle)
	}
	if len(v.RemediationSteps) > 0 {
		buf.WriteString("\n**Remediation Steps:**\n")
		for i, step := range v.RemediationSteps {
			fmt.Fprintf(buf, "%s%d. %s\n", indent, i+1, step)
		}
	}
	if len(v.RequiredArtifacts) > 0 {
		fmt.Fprintf(buf, "\n**Required Artifacts:** %s\n", strings.Join(v.RequiredArtifacts, ", "))
	}
}

// pct formats an already rounded percentage with one decimal.
func pct(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
