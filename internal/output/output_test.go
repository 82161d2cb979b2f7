package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/score"
)

var at = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

func sample() Evaluation {
	verdicts := []model.Verdict{
		{
			ID: "GOV-01", Title: "Owner", Requirement: "Named owner", Severity: "high", Weight: 3,
			Passed: true, EvidencePath: "system_profile.owner", EvidenceValue: profile.StringValue("Jane"),
			NISTMapping: []string{"GOVERN 2.1"}, EUArticle: "Article 17",
		},
		{
			ID: "GOV-03", Title: "Logging", Severity: "high", Weight: 3,
			EvidencePath: "system_profile.logging", EvidenceValue: profile.NullValue(),
			RemediationSteps: []string{"Enable logs", "Retain logs"}, RequiredArtifacts: []string{"Logging policy"},
		},
		{
			ID: "GOV-15", Title: "Output", Severity: "low", Weight: 1,
			Passed: true, EvidencePath: "system_profile.output_monitoring",
			EvidenceValue: profile.MapValue(map[string]profile.Value{"enabled": profile.BoolValue(true)}),
		},
	}
	return Evaluation{
		SystemName:  "Hiring Screener",
		EvaluatedAt: at,
		Verdicts:    verdicts,
		Summary:     score.Aggregate(verdicts),
	}
}

func TestEvaluationJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEvaluationJSON(&buf, sample()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	meta := doc["metadata"].(map[string]any)
	assert.Equal(t, "Hiring Screener", meta["system_name"])
	assert.Equal(t, "2026-03-01T12:30:00Z", meta["evaluated_at"])
	assert.Equal(t, 3.0, meta["controls_evaluated"])

	summary := doc["summary"].(map[string]any)
	assert.Equal(t, 66.7, summary["pass_rate"])
	assert.Equal(t, 3.0, summary["total_controls"])

	controls := doc["controls"].([]any)
	require.Len(t, controls, 3)
	assert.Nil(t, controls[0].(map[string]any)["remediation"])
	assert.Nil(t, controls[1].(map[string]any)["evidence_value"])
	rem := controls[1].(map[string]any)["remediation"].(map[string]any)
	assert.Equal(t, []any{"Enable logs", "Retain logs"}, rem["steps"])

	failed := doc["failed_controls"].([]any)
	require.Len(t, failed, 1)
	assert.Equal(t, "GOV-03", failed[0].(map[string]any)["id"])
}

func TestClassificationJSON(t *testing.T) {
	c := Classification{
		SystemName:   "Bot",
		ClassifiedAt: at,
		Result: model.Classification{
			Tier:        model.TierLimited,
			Reasons:     []string{"Limited risk indicator: chatbot"},
			Obligations: []string{"Disclose AI use"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteClassificationJSON(&buf, c))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.NotContains(t, doc, "high_risk_compliance")
	body := doc["classification"].(map[string]any)
	assert.Equal(t, "limited", body["risk_tier"])
	assert.Equal(t, "2026-03-01T12:30:00Z", doc["metadata"].(map[string]any)["classified_at"])
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sample()))
	out := buf.String()

	assert.Contains(t, out, "# AI Governance Control Evaluation Report")
	assert.Contains(t, out, "**Evaluated:** 2026-03-01 12:30:00")
	assert.Contains(t, out, "| Overall Pass Rate | 66.7% |")
	assert.Contains(t, out, "| High-Severity Failures | 1 |")
	assert.Contains(t, out, "| GOV-03 | Logging | high | ❌ FAIL |")
	assert.Contains(t, out, "| high | 1 | 1 | 50.0% |")
	assert.Contains(t, out, "| low | 1 | 0 | 100.0% |")
	assert.NotContains(t, out, "| medium |")
	assert.Contains(t, out, "### GOV-03: Logging")
	assert.Contains(t, out, "- **Requirement:** N/A")
	assert.Contains(t, out, "- **Current Value:** `null`")
	assert.Contains(t, out, "1. Enable logs\n2. Retain logs")
	assert.Contains(t, out, "**Required Artifacts:** Logging policy")
	assert.NotContains(t, out, "All Controls Passed")
}

func TestMarkdownAllPassed(t *testing.T) {
	e := sample()
	e.Verdicts = e.Verdicts[:1]
	e.Summary = score.Aggregate(e.Verdicts)

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, e))
	assert.Contains(t, buf.String(), "## All Controls Passed\n\nNo remediation required.")
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, []string{"GOV-01", "Owner", "high", "3", "PASS", "system_profile.owner", "Jane", "GOVERN 2.1", "Article 17", "", ""}, rows[1])
	assert.Equal(t, "FAIL", rows[2][4])
	assert.Equal(t, "null", rows[2][6])
	assert.Equal(t, "Enable logs | Retain logs", rows[2][9])
	assert.Equal(t, `{"enabled":true}`, rows[3][6])
}

func TestHTMLEscapes(t *testing.T) {
	e := sample()
	e.SystemName = "<script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, e))
	out := buf.String()
	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "GOV-03: Logging")
	assert.Contains(t, out, "<li>Enable logs</li>")
	assert.Contains(t, out, `class="sev-high"`)
}

func TestTablePlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sample(), Plain()))
	out := buf.String()

	assert.Contains(t, out, "AI GOVERNANCE CONTROL EVALUATION REPORT")
	assert.Contains(t, out, "System: Hiring Screener")
	assert.Contains(t, out, "**Overall Pass Rate:** 66.7% (2/3)")
	assert.Contains(t, out, "| GOV-01 | Owner | high | ✅ PASS |")
	assert.Contains(t, out, "  1. Enable logs")
	assert.NotContains(t, out, "\x1b[")
}

func TestClassificationTable(t *testing.T) {
	c := Classification{
		SystemName: "Screener",
		Result: model.Classification{
			Tier:         model.TierHigh,
			Reasons:      []string{"Matches Annex III category: Employment"},
			Obligations:  []string{"Risk management system"},
			DeclaredTier: "minimal",
		},
		Compliance: &model.ComplianceResult{
			Checks: model.ComplianceChecks{
				{Name: "risk_management", Label: "Risk Management System (Art. 9)", Passed: true},
				{Name: "data_governance", Label: "Data Governance (Art. 10)"},
			},
			Passed: 1, Total: 2, ComplianceRate: 50,
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteClassificationTable(&buf, c, Plain()))
	out := buf.String()

	assert.Contains(t, out, "Description: N/A")
	assert.Contains(t, out, "**Risk Tier:** 🟠 HIGH")
	assert.Contains(t, out, "(profile declares minimal)")
	assert.Contains(t, out, "- Matches Annex III category: Employment")
	assert.Contains(t, out, "**Compliance Rate:** 50.0%")
	assert.Contains(t, out, "| Risk Management System (Art. 9) | ✅ |")
	assert.Contains(t, out, "- ❌ Data Governance (Art. 10): Evidence missing or insufficient")
}

func TestValidationTable(t *testing.T) {
	res := model.ValidationResult{
		ControlsCount:        2,
		Errors:               []model.Issue{{ControlID: "GOV-02", Message: "Missing required field: title", Type: model.IssueError}},
		Warnings:             []model.Issue{{ControlID: "GOV-01", Message: "Missing recommended field: nist_ai_rmf", Type: model.IssueWarning}},
		SeverityDistribution: map[string]int{"high": 1, "HIGHEST": 1, "low": 0},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteValidationTable(&buf, res, "controls.yaml", false, Plain()))
	out := buf.String()

	assert.Contains(t, out, "Validating: controls.yaml")
	assert.Contains(t, out, "ERRORS (1):\n   [GOV-02] Missing required field: title")
	assert.Contains(t, out, "WARNINGS (1):")
	assert.NotContains(t, out, "All controls passed validation!")
	assert.Contains(t, out, "    high: 1\n    low: 0\n    HIGHEST: 1")

	buf.Reset()
	require.NoError(t, WriteValidationTable(&buf, model.ValidationResult{Error: "No controls found in file"}, "x.yaml", true, Plain()))
	assert.Contains(t, buf.String(), "ERROR: No controls found in file")
	assert.NotContains(t, buf.String(), "Validating:")
}

func TestBatchTable(t *testing.T) {
	res := model.BatchResult{Items: []model.BatchItem{
		{Profile: "a-very-long-profile-name.json", SystemName: "A system with a long name", PassRate: 80, WeightedScore: 75.5, HighFailures: 1},
		{Profile: "broken.json", Error: "parse profile: unexpected EOF"},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteBatchTable(&buf, res, Plain()))
	out := buf.String()
	assert.Contains(t, out, "| a-very-long-profile- | A system with a | 80.0% | 75.5% | 1 |")
	assert.Contains(t, out, "| broken.json | ERROR: parse profile: unexpected EOF |")
}

func TestComparisonTable(t *testing.T) {
	c := model.Comparison{
		Baseline:    "before.json",
		Current:     "after.json",
		PassRate:    model.Trend{From: 50, To: 75, DeltaScore: 25, Direction: model.Up},
		NewFailures: []model.ControlRef{{ID: "GOV-02", Title: "Inventory", Severity: "medium"}},
		Resolved:    []model.ControlRef{},
		Removed:     []string{"GOV-99"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteComparisonTable(&buf, c, Plain()))
	out := buf.String()
	assert.Contains(t, out, "| Pass Rate | 50.0% | 75.0% | ▲ +25.0 |")
	assert.Contains(t, out, "| Weighted Score | 0.0% | 0.0% | = 0.0 |")
	assert.Contains(t, out, "### New Failures (1)\n\n- GOV-02: Inventory [medium]")
	assert.Contains(t, out, "Controls only in baseline: GOV-99")
}

func TestReportHTML(t *testing.T) {
	r := model.Report{
		Metadata: model.ReportMetadata{ReportID: "rep-1", SystemName: "Screener & Co", GeneratedAt: "2026-03-01T12:30:00Z", ControlsVersion: "1.0"},
		ExecutiveSummary: model.ExecutiveSummary{
			OverallPassRate: 66.7, RiskTier: model.TierHigh, HighSeverityFailures: 1,
			Recommendation: "Address 1 high-severity control failure(s) before deployment",
		},
		ControlEvaluation: model.ControlEvaluation{
			FailedControls: []model.FailedControl{{ID: "GOV-03", Title: "Logging", Severity: "high"}},
		},
	}
	plan := []model.RemediationStep{{Priority: 2, ControlID: "GOV-03", Title: "Logging", Steps: []string{"Enable logs"}}}

	var buf bytes.Buffer
	require.NoError(t, WriteReportHTML(&buf, r, plan))
	out := buf.String()
	assert.Contains(t, out, "Screener &amp; Co")
	assert.Contains(t, out, "HIGH RISK")
	assert.Contains(t, out, "<td>GOV-03: Logging</td><td>Enable logs</td>")
	assert.Contains(t, out, "Report ID: rep-1")
}

func TestRedact(t *testing.T) {
	r := model.Report{Metadata: model.ReportMetadata{ReportID: "rep-1", SystemName: "Secret", SystemDescription: "internal"}}
	red := Redact(r)
	assert.Equal(t, Redacted, red.Metadata.SystemName)
	assert.Equal(t, Redacted, red.Metadata.SystemDescription)
	assert.Equal(t, "rep-1", red.Metadata.ReportID)
	assert.Equal(t, "Secret", r.Metadata.SystemName)

	e := sample()
	re := RedactEvaluation(e)
	assert.Equal(t, Redacted, re.SystemName)
	assert.Empty(t, re.SystemDescription)
	assert.Equal(t, Redacted, re.Verdicts[0].EvidenceValue.String())
	assert.True(t, re.Verdicts[1].EvidenceValue.IsNull())
	assert.Equal(t, "Jane", e.Verdicts[0].EvidenceValue.String())
}

func TestToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, ToFile(p, func(w io.Writer) error { return WriteMarkdown(w, sample()) }))
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# AI Governance"))
}

func TestStylesForBuffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.Equal(t, "x", StylesFor(&bytes.Buffer{}).Fail.Render("x"))
}
