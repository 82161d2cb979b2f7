package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/remediation"
)

func ctl(id, evidence, severity string) model.Control {
	return model.Control{
		ID:          id,
		Title:       "Title " + id,
		Requirement: "Requirement " + id,
		Evidence:    evidence,
		Severity:    severity,
	}
}

func parse(t *testing.T, doc string) profile.Value {
	t.Helper()
	v, err := profile.Parse([]byte(doc), profile.FormatJSON)
	require.NoError(t, err)
	return v
}

func ids(vs []model.Verdict) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestEvaluateSingleControlPass(t *testing.T) {
	e := New(remediation.Default(), nil)
	root := parse(t, `{"owner": "Jane"}`)
	got := e.Evaluate([]model.Control{ctl("GOV-01", "system_profile.owner", "high")}, root, Options{})

	require.Len(t, got, 1)
	v := got[0]
	assert.True(t, v.Passed)
	assert.Equal(t, 3, v.Weight)
	assert.Equal(t, "owner", v.EvidencePath)
	assert.Equal(t, "Jane", v.EvidenceValue.String())
	assert.Len(t, v.RemediationSteps, 4)
	assert.Len(t, v.RequiredArtifacts, 3)
}

func TestEvaluateExistsFalseFails(t *testing.T) {
	e := New(remediation.Default(), nil)
	root := parse(t, `{"model_card": {"exists": false, "url": "x"}}`)
	got := e.Evaluate([]model.Control{ctl("GOV-11", "system_profile.model_card", "medium")}, root, Options{})
	require.Len(t, got, 1)
	assert.False(t, got[0].Passed)
	assert.Equal(t, 2, got[0].Weight)
}

func TestEvaluateMissingEvidence(t *testing.T) {
	e := New(remediation.Default(), nil)
	got := e.Evaluate([]model.Control{ctl("GOV-03", "system_profile.logging.enabled", "high")}, parse(t, `{}`), Options{})
	require.Len(t, got, 1)
	assert.False(t, got[0].Passed)
	assert.True(t, got[0].EvidenceValue.IsNull())
	assert.Equal(t, "logging.enabled", got[0].EvidencePath)
}

func TestEvaluateKeepsCatalogOrder(t *testing.T) {
	e := New(nil, nil)
	controls := []model.Control{
		ctl("C", "system_profile.c", "low"),
		ctl("A", "system_profile.a", "critical"),
		ctl("B", "system_profile.b", "medium"),
	}
	got := e.Evaluate(controls, parse(t, `{"a": 1}`), Options{})
	assert.Equal(t, []string{"C", "A", "B"}, ids(got))
}

func TestEvaluateFilters(t *testing.T) {
	e := New(nil, nil)
	controls := []model.Control{
		ctl("LOW", "system_profile.x", "low"),
		ctl("MED", "system_profile.x", "Medium"),
		ctl("HIGH", "system_profile.missing", "high"),
		ctl("CRIT", "system_profile.x", "critical"),
		ctl("ODD", "system_profile.missing", "urgent"),
	}
	root := parse(t, `{"x": true}`)

	assert.Equal(t, []string{"HIGH", "CRIT"}, ids(e.Evaluate(controls, root, Options{MinSeverity: "high"})))
	assert.Equal(t, []string{"HIGH", "ODD"}, ids(e.Evaluate(controls, root, Options{FailedOnly: true})))
	assert.Equal(t, []string{"HIGH"}, ids(e.Evaluate(controls, root, Options{MinSeverity: "HIGH", FailedOnly: true})))
	assert.Len(t, e.Evaluate(controls, root, Options{MinSeverity: "bogus"}), 5)
}

func TestEvaluateUnknownSeverityWeight(t *testing.T) {
	got := New(nil, nil).Evaluate([]model.Control{ctl("X", "system_profile.x", "urgent")}, parse(t, `{}`), Options{})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Weight)
}

func TestEvaluateUnknownIDHasEmptyRemediation(t *testing.T) {
	got := New(remediation.Default(), nil).Evaluate([]model.Control{ctl("CUSTOM-1", "system_profile.x", "low")}, parse(t, `{}`), Options{})
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].RemediationSteps)
	assert.Empty(t, got[0].RemediationSteps)
	assert.Empty(t, got[0].RequiredArtifacts)
	assert.NotNil(t, got[0].NISTMapping)
}

func TestEvaluateEmptyCatalog(t *testing.T) {
	got := New(nil, nil).Evaluate(nil, parse(t, `{}`), Options{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEvaluatePrefixStrippedOnce(t *testing.T) {
	root := parse(t, `{"system_profile": {"owner": "nested"}}`)
	got := New(nil, nil).Evaluate([]model.Control{ctl("X", "system_profile.system_profile.owner", "low")}, root, Options{})
	require.Len(t, got, 1)
	assert.Equal(t, "system_profile.owner", got[0].EvidencePath)
	assert.True(t, got[0].Passed)

	bare := New(nil, nil).Evaluate([]model.Control{ctl("Y", "owner", "low")}, parse(t, `{"owner": "x"}`), Options{})
	assert.True(t, bare[0].Passed)
}

func TestEvaluateAssertions(t *testing.T) {
	e := New(nil, nil)
	root := parse(t, `{"logging": {"enabled": true, "retention_days": 30}}`)

	long := ctl("RET", "system_profile.logging.retention_days", "medium")
	long.Assert = "value >= 90"
	// Zero-day retention is truthy evidence; the assertion is stricter.
	plain := ctl("PLAIN", "system_profile.logging.retention_days", "medium")
	broken := ctl("BROKEN", "system_profile.logging", "medium")
	broken.Assert = "value.enabled &&"
	onMap := ctl("MAP", "system_profile.logging", "medium")
	onMap.Assert = "value.enabled && value.retention_days > 7"
	missing := ctl("MISSING", "system_profile.nope", "medium")
	missing.Assert = "value > 1"

	got := e.Evaluate([]model.Control{long, plain, broken, onMap, missing}, root, Options{})
	require.Len(t, got, 5)
	assert.False(t, got[0].Passed)
	assert.True(t, got[1].Passed)
	assert.False(t, got[2].Passed)
	assert.True(t, got[3].Passed)
	assert.False(t, got[4].Passed)

	// Cached programs give the same answer.
	again := e.Evaluate([]model.Control{long, broken}, root, Options{})
	assert.False(t, again[0].Passed)
	assert.False(t, again[1].Passed)
}

func TestEvaluateIsPure(t *testing.T) {
	e := New(remediation.Default(), nil)
	root := parse(t, `{"owner": "Jane", "logging": {"enabled": false}}`)
	controls := []model.Control{
		ctl("GOV-01", "system_profile.owner", "high"),
		ctl("GOV-03", "system_profile.logging", "high"),
	}
	first := e.Evaluate(controls, root, Options{})
	second := e.Evaluate(controls, root, Options{})
	assert.Equal(t, first, second)
}

func TestWeights(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 4, w.For("critical"))
	assert.Equal(t, 3, w.For("HIGH"))
	assert.Equal(t, 2, w.For("medium"))
	assert.Equal(t, 1, w.For("low"))
	assert.Equal(t, 1, w.For(""))
	assert.Equal(t, 5, Weights{model.SeverityHigh: 5}.For("high"))
}
