package output

import (
	"html/template"
	"io"
	"strings"

	"ai-governance-controls/internal/model"
)

const evaluationHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>AI Governance Control Evaluation Report</title>
<style>
body { font-family: Arial; margin: 40px; }
h1 { color: #333; }
.score { font-size: 24px; font-weight: bold; }
.meta { color: #555; margin-bottom: 16px; }
table { border-collapse: collapse; width: 100%; margin-top: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; vertical-align: top; }
th { background-color: #f2f2f2; }
.pass { color: #1a7a1a; }
.fail { color: #c0392b; font-weight: bold; }
.sev-high, .sev-critical { color: #d35400; font-weight: bold; }
code { background: #f6f6f6; padding: 1px 4px; }
</style>
</head>
<body>

<h1>AI Governance Control Evaluation Report</h1>
<div class="meta">
System: {{.SystemName}}<br>
Evaluated: {{.EvaluatedAt.Format "2006-01-02 15:04:05"}}<br>
Controls Evaluated: {{.Summary.Total}}
</div>

<div class="score">
Pass Rate: {{pct .Summary.PassRate}}% ({{.Summary.Passed}}/{{.Summary.Total}})
&nbsp;|&nbsp; Weighted Score: {{pct .Summary.WeightedScore}}%
</div>

<h3>Results by Severity</h3>
<table>
<tr><th>Severity</th><th>Passed</th><th>Failed</th><th>Rate</th></tr>
{{range severityRows .Summary}}
<tr><td class="sev-{{.Severity}}">{{.Severity}}</td><td>{{.Passed}}</td><td>{{.Failed}}</td><td>{{pct .Rate}}%</td></tr>
{{end}}
</table>

<h3>Control Results</h3>
<table>
<tr><th>ID</th><th>Control</th><th>Severity</th><th>Result</th></tr>
{{range .Verdicts}}
<tr>
<td>{{.ID}}</td>
<td>{{.Title}}</td>
<td class="sev-{{lower .Severity}}">{{.Severity}}</td>
<td>{{if .Passed}}<span class="pass">PASS</span>{{else}}<span class="fail">FAIL</span>{{end}}</td>
</tr>
{{end}}
</table>

{{with failed .Verdicts}}
<h3>Failed Controls - Remediation Required</h3>
{{range .}}
<h4>{{.ID}}: {{.Title}}</h4>
<ul>
<li><b>Severity:</b> {{.Severity}}</li>
<li><b>Requirement:</b> {{or .Requirement "N/A"}}</li>
<li><b>Evidence Path:</b> <code>{{.EvidencePath}}</code></li>
<li><b>Current Value:</b> <code>{{.EvidenceValue.String}}</code></li>
{{if .NISTMapping}}<li><b>NIST AI RMF:</b> {{join .NISTMapping ", "}}</li>{{end}}
{{if .EUArticle}}<li><b>EU AI Act:</b> {{.EUArticle}}</li>{{end}}
</ul>
{{if .RemediationSteps}}<ol>{{range .RemediationSteps}}<li>{{.}}</li>{{end}}</ol>{{end}}
{{if .RequiredArtifacts}}<p><b>Required Artifacts:</b> {{join .RequiredArtifacts ", "}}</p>{{end}}
{{end}}
{{else}}
<p class="pass">All controls passed. No remediation required.</p>
{{end}}

</body>
</html>
`

var evaluationTemplate = template.Must(template.New("evaluation").Funcs(template.FuncMap{
	"pct":          pct,
	"severityRows": severityRows,
	"failed":       model.Failed,
	"join":         strings.Join,
	"lower":        strings.ToLower,
}).Parse(evaluationHTML))

type severityRow struct {
	Severity model.Severity
	model.SeverityBucket
	Rate float64
}

// severityRows lists the present buckets, highest severity first.
func severityRows(s model.ScoreSummary) []severityRow {
	var rows []severityRow
	for _, sev := range model.BucketSeverities {
		if b, ok := s.BySeverity[sev]; ok {
			rows = append(rows, severityRow{Severity: sev, SeverityBucket: b, Rate: severityRate(b)})
		}
	}
	return rows
}

// WriteHTML renders the evaluation as a single HTML page.
func WriteHTML(w io.Writer, e Evaluation) error {
	return evaluationTemplate.Execute(w, e)
}
