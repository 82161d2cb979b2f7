package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-governance-controls/internal/evaluate"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/remediation"
	"ai-governance-controls/internal/risk"
)

var fixed = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func builder() *Builder {
	return NewBuilder(
		evaluate.New(remediation.Default(), nil),
		risk.NewClassifier(nil),
		WithClock(func() time.Time { return fixed }),
		WithIDs(func() string { return "rep-1" }),
	)
}

func controls() []model.Control {
	return []model.Control{
		{ID: "GOV-01", Title: "Owner", Evidence: "system_profile.owner", Severity: "high"},
		{ID: "GOV-03", Title: "Logging", Evidence: "system_profile.logging", Severity: "high"},
		{ID: "GOV-15", Title: "Output", Evidence: "system_profile.output_monitoring", Severity: "low"},
	}
}

func parse(t *testing.T, doc string) profile.Value {
	t.Helper()
	v, err := profile.Parse([]byte(doc), profile.FormatJSON)
	require.NoError(t, err)
	return v
}

func TestBuildHighRiskReport(t *testing.T) {
	root := parse(t, `{
		"system_name": "Hiring Assistant",
		"system_description": "Ranks candidates for recruitment",
		"owner": "Jane",
		"logging": {"enabled": false},
		"output_monitoring": {"enabled": true}
	}`)
	r := builder().Build(controls(), root)

	assert.Equal(t, "rep-1", r.Metadata.ReportID)
	assert.Equal(t, "Hiring Assistant", r.Metadata.SystemName)
	assert.Equal(t, "2026-03-01T12:00:00Z", r.Metadata.GeneratedAt)
	assert.Equal(t, "1.0", r.Metadata.ControlsVersion)

	assert.Equal(t, model.TierHigh, r.ExecutiveSummary.RiskTier)
	assert.Equal(t, 1, r.ExecutiveSummary.HighSeverityFailures)
	assert.Equal(t, 66.7, r.ExecutiveSummary.OverallPassRate)
	assert.Equal(t, 3, r.ExecutiveSummary.TotalControls)
	assert.Equal(t, "Address 1 high-severity control failure(s) before production deployment.", r.ExecutiveSummary.Recommendation)

	require.Len(t, r.ControlEvaluation.Controls, 3)
	require.Len(t, r.ControlEvaluation.FailedControls, 1)
	assert.Equal(t, "GOV-03", r.ControlEvaluation.FailedControls[0].ID)
	assert.Len(t, r.ControlEvaluation.FailedControls[0].RemediationSteps, 4)

	require.NotNil(t, r.RiskClassification.HighRiskCompliance)
	assert.Equal(t, 0, r.RiskClassification.HighRiskCompliance.Passed)
}

func TestBuildMinimalHasNullCompliance(t *testing.T) {
	root := parse(t, `{"system_name": "Spam filter", "owner": "x", "logging": {"enabled": true}, "output_monitoring": {"enabled": true}}`)
	r := builder().Build(controls(), root)
	assert.Nil(t, r.RiskClassification.HighRiskCompliance)
	assert.Equal(t, "System meets baseline governance requirements. Continue periodic reviews.", r.ExecutiveSummary.Recommendation)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	rc := doc["risk_classification"].(map[string]any)
	v, present := rc["high_risk_compliance"]
	assert.True(t, present)
	assert.Nil(t, v)
	assert.Empty(t, doc["control_evaluation"].(map[string]any)["failed_controls"])
}

func TestRecommendation(t *testing.T) {
	withHigh := func(failed int, rate float64) model.ScoreSummary {
		return model.ScoreSummary{
			PassRate:   rate,
			BySeverity: map[model.Severity]model.SeverityBucket{model.SeverityHigh: {Total: 3, Failed: failed}},
		}
	}
	tests := []struct {
		name string
		s    model.ScoreSummary
		tier model.Tier
		want string
	}{
		{"prohibited wins", withHigh(2, 10), model.TierUnacceptable, "CRITICAL: System uses prohibited AI practices. Deployment not permitted under EU AI Act."},
		{"high failures", withHigh(2, 90), model.TierMinimal, "Address 2 high-severity control failure(s) before production deployment."},
		{"low coverage", withHigh(0, 79.9), model.TierHigh, "Improve control coverage to meet minimum compliance threshold of 80%."},
		{"high tier", withHigh(0, 80), model.TierHigh, "High-risk system - ensure ongoing compliance monitoring and annual reassessment."},
		{"baseline", model.ScoreSummary{PassRate: 100}, model.TierLimited, "System meets baseline governance requirements. Continue periodic reviews."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommendation(tt.s, tt.tier))
		})
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	b := NewBuilder(evaluate.New(nil, nil), risk.NewClassifier(nil))
	root := parse(t, `{}`)
	assert.NotEqual(t, b.Build(nil, root).Metadata.ReportID, b.Build(nil, root).Metadata.ReportID)
}
