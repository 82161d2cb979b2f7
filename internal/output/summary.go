package output

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"ai-governance-controls/internal/model"
)

// maxPriorityActions caps the remediation table of the executive summary.
const maxPriorityActions = 5

// WriteReportHTML writes a print-optimised single-page executive summary of
// a combined report. plan supplies the priority actions table.
func WriteReportHTML(w io.Writer, r model.Report, plan []model.RemediationStep) error {
	var buf bytes.Buffer
	buildSummary(&buf, r, plan)
	_, err := w.Write(buf.Bytes())
	return err
}

func buildSummary(buf *bytes.Buffer, r model.Report, plan []model.RemediationStep) {
	w := func(s string) { buf.WriteString(s) }
	wf := func(f string, a ...any) { fmt.Fprintf(buf, f, a...) }
	e := html.EscapeString
	x := r.ExecutiveSummary
	rc := r.RiskClassification

	tierColor := map[model.Tier]string{
		model.TierUnacceptable: "#c0392b", model.TierHigh: "#d35400",
		model.TierLimited: "#b7950b", model.TierMinimal: "#1a7a1a",
	}[x.RiskTier]
	if tierColor == "" {
		tierColor = "#555"
	}

	w(`<!DOCTYPE html><html lang="en"><head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>AI Governance Executive Summary</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{background:#fff;color:#111;font-family:"Segoe UI",Arial,sans-serif;font-size:13px;line-height:1.5;padding:32px 40px}
h1{font-size:1.4em;font-weight:700;margin-bottom:2px}
h2{font-size:1em;font-weight:600;margin:18px 0 6px;border-bottom:1px solid #e0e0e0;padding-bottom:3px}
.meta{color:#555;font-size:.82em;margin-bottom:20px}
.score-hero{display:flex;align-items:center;gap:24px;margin-bottom:20px;padding:16px 20px;border:1px solid #e0e0e0;border-radius:6px;background:#fafafa}
.score-big{font-size:3.2em;font-weight:800;line-height:1}
.badge{display:inline-block;padding:4px 14px;border-radius:14px;font-weight:700;font-size:1em;border:2px solid}
.rec{padding:10px 14px;border-left:4px solid #555;background:#f6f6f6;margin-bottom:18px}
table{width:100%;border-collapse:collapse;margin-top:4px;font-size:.84em}
th{background:#f0f0f0;text-align:left;padding:5px 8px;border-bottom:1px solid #ccc;font-weight:600}
td{padding:5px 8px;border-bottom:1px solid #e8e8e8;vertical-align:top}
.c-critical{color:#c0392b;font-weight:600}
.c-high{color:#d35400;font-weight:600}
.c-medium{color:#7d6608}
.c-low{color:#555}
.ok{color:#1a7a1a}.bad{color:#c0392b}
.footer{margin-top:28px;color:#888;font-size:.78em;border-top:1px solid #e0e0e0;padding-top:10px}
.print-btn{display:inline-block;margin-bottom:20px;padding:7px 18px;background:#1a1a2e;color:#fff;border:none;border-radius:4px;cursor:pointer;font-size:.86em}
@media print{
  .print-btn{display:none}
  body{padding:16px 20px}
  @page{margin:1.5cm}
}
</style></head><body>
`)

	w(`<button class="print-btn" onclick="window.print()">Print / Save as PDF</button>`)

	w(`<h1>AI Governance Compliance Report: Executive Summary</h1>`)
	wf(`<div class="meta">System: %s &nbsp;|&nbsp; Generated: %s &nbsp;|&nbsp; Controls version: %s</div>`,
		e(r.Metadata.SystemName), e(r.Metadata.GeneratedAt), e(r.Metadata.ControlsVersion))
	if r.Metadata.SystemDescription != "" {
		wf(`<p style="margin-bottom:14px">%s</p>`, e(r.Metadata.SystemDescription))
	}

	wf(`<div class="score-hero">
<div class="score-big">%s<span style="font-size:.4em;color:#555">%%</span></div>
<div>
<div class="badge" style="color:%s;border-color:%s">%s RISK</div>
<div style="color:#555;font-size:.82em;margin-top:6px">Weighted score: %s%% &nbsp; Controls: %d &nbsp; High-severity failures: %d</div>
</div>
</div>`,
		pct(x.OverallPassRate),
		tierColor, tierColor, e(strings.ToUpper(string(x.RiskTier))),
		pct(x.WeightedScore), x.TotalControls, x.HighSeverityFailures)

	wf(`<div class="rec" style="border-color:%s"><b>Recommendation:</b> %s</div>`, tierColor, e(x.Recommendation))

	w(`<h2>Results by Severity</h2>`)
	w(`<table><thead><tr><th>Severity</th><th>Passed</th><th>Failed</th><th>Rate</th></tr></thead><tbody>`)
	for _, row := range severityRows(r.ControlEvaluation.Summary) {
		wf(`<tr><td class="c-%s">%s</td><td>%d</td><td>%d</td><td>%s%%</td></tr>`,
			e(string(row.Severity)), e(string(row.Severity)), row.Passed, row.Failed, pct(row.Rate))
	}
	w(`</tbody></table>`)

	w(`<h2>Risk Classification</h2>`)
	if len(rc.Reasons) > 0 {
		w(`<ul style="margin-left:18px">`)
		for _, reason := range rc.Reasons {
			wf(`<li>%s</li>`, e(reason))
		}
		w(`</ul>`)
	}
	if rc.HighRiskCompliance != nil {
		wf(`<p style="margin-top:8px">High-risk compliance: <b>%s%%</b> (%d/%d)</p>`,
			pct(rc.HighRiskCompliance.ComplianceRate), rc.HighRiskCompliance.Passed, rc.HighRiskCompliance.Total)
		w(`<table><thead><tr><th>Requirement</th><th>Status</th></tr></thead><tbody>`)
		for _, c := range rc.HighRiskCompliance.Checks {
			cls, mark := "ok", "met"
			if !c.Passed {
				cls, mark = "bad", "gap"
			}
			wf(`<tr><td>%s</td><td class="%s">%s</td></tr>`, e(c.Label), cls, mark)
		}
		w(`</tbody></table>`)
	}

	failed := r.ControlEvaluation.FailedControls
	w(`<h2>Failed Controls</h2>`)
	if len(failed) == 0 {
		w(`<p class="ok">All controls passed.</p>`)
	} else {
		w(`<table><thead><tr><th>ID</th><th>Control</th><th>Severity</th></tr></thead><tbody>`)
		for _, f := range failed {
			sev := strings.ToLower(f.Severity)
			wf(`<tr><td>%s</td><td>%s</td><td class="c-%s">%s</td></tr>`, e(f.ID), e(f.Title), e(sev), e(f.Severity))
		}
		w(`</tbody></table>`)
	}

	if len(plan) > 0 {
		top := plan
		if len(top) > maxPriorityActions {
			top = top[:maxPriorityActions]
		}
		w(`<h2>Priority Actions</h2>`)
		w(`<table><thead><tr><th>Priority</th><th>Control</th><th>First step</th></tr></thead><tbody>`)
		for _, s := range top {
			first := ""
			if len(s.Steps) > 0 {
				first = s.Steps[0]
			}
			wf(`<tr><td style="width:70px">P%d</td><td>%s: %s</td><td>%s</td></tr>`, s.Priority, e(s.ControlID), e(s.Title), e(first))
		}
		w(`</tbody></table>`)
		if len(plan) > maxPriorityActions {
			wf(`<p style="color:#555;font-size:.82em;margin-top:4px">Showing top %d of %d actions. See the full report for the complete list.</p>`, maxPriorityActions, len(plan))
		}
	}

	wf(`<div class="footer">Report ID: %s</div>`, e(r.Metadata.ReportID))
	w(`</body></html>`)
}
