package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-governance-controls/internal/model"
)

func validControl(id string) map[string]any {
	return map[string]any{
		"id":                id,
		"title":             "Owner",
		"requirement":       "Has owner",
		"evidence":          "system_profile.owner",
		"severity":          "high",
		"nist_ai_rmf":       []any{"GOVERN 2.1"},
		"eu_ai_act_article": "Art. 16",
	}
}

func messages(issues []model.Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Message
	}
	return out
}

func TestValidateClean(t *testing.T) {
	res := Validate([]map[string]any{validControl("GOV-01"), validControl("GOV-02")}, true)
	assert.True(t, res.Valid)
	assert.Equal(t, 2, res.ControlsCount)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, map[string]int{"high": 2}, res.SeverityDistribution)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := validControl("GOV-01")
	c["severity"] = "urgent"
	c["evidence"] = "profile.owner"
	delete(c, "title")

	res := Validate([]map[string]any{c}, false)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"Missing required field: title",
		"Invalid severity 'urgent'. Must be one of: ['low', 'medium', 'high', 'critical']",
		"Evidence path should start with 'system_profile.' Got: profile.owner",
	}, messages(res.Errors))
	for _, is := range res.Errors {
		assert.Equal(t, "GOV-01", is.ControlID)
		assert.Equal(t, model.IssueError, is.Type)
	}
}

func TestValidateEmptyRequired(t *testing.T) {
	c := validControl("GOV-01")
	c["requirement"] = ""
	c["severity"] = nil
	res := Validate([]map[string]any{c}, false)
	assert.Equal(t, []string{
		"Empty required field: requirement",
		"Empty required field: severity",
	}, messages(res.Errors))
	assert.Equal(t, 1, res.SeverityDistribution["unknown"])
}

func TestValidateSeverityCaseInsensitive(t *testing.T) {
	c := validControl("GOV-01")
	c["severity"] = "HIGH"
	res := Validate([]map[string]any{c}, false)
	assert.True(t, res.Valid)
	assert.Equal(t, 1, res.SeverityDistribution["HIGH"])
}

func TestValidateDuplicates(t *testing.T) {
	a, b, c := validControl("GOV-01"), validControl("GOV-01"), validControl("GOV-01")
	b["severity"] = "bogus"
	res := Validate([]map[string]any{a, b, c}, false)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, "Duplicate control ID: GOV-01", res.Errors[0].Message)
	assert.Equal(t, "Duplicate control ID: GOV-01", res.Errors[1].Message)
	assert.Contains(t, res.Errors[2].Message, "Invalid severity 'bogus'")
}

func TestValidateMissingIDUsesUnknown(t *testing.T) {
	c := validControl("x")
	delete(c, "id")
	res := Validate([]map[string]any{c}, false)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "UNKNOWN", res.Errors[0].ControlID)
	assert.Equal(t, "Missing required field: id", res.Errors[0].Message)
}

func TestValidateWarningsAndStrict(t *testing.T) {
	c := validControl("GOV-01")
	delete(c, "nist_ai_rmf")
	c["eu_ai_act_article"] = ""

	lenient := Validate([]map[string]any{c}, false)
	assert.True(t, lenient.Valid)
	assert.Equal(t, []string{"Missing recommended field: nist_ai_rmf"}, messages(lenient.Warnings))
	assert.Equal(t, model.IssueWarning, lenient.Warnings[0].Type)

	strict := Validate([]map[string]any{c}, true)
	assert.False(t, strict.Valid)
	assert.Empty(t, strict.Errors)
}

func TestValidateIdempotent(t *testing.T) {
	controls := []map[string]any{validControl("A"), validControl("A")}
	assert.Equal(t, Validate(controls, true), Validate(controls, true))
}

func TestValidateAssert(t *testing.T) {
	ok := validControl("A")
	ok["assert"] = "value.exists == true"
	bad := validControl("B")
	bad["assert"] = "value.exists ==="
	notBool := validControl("C")
	notBool["assert"] = "'yes'"

	res := Validate([]map[string]any{ok, bad, notBool}, false)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "B", res.Errors[0].ControlID)
	assert.Contains(t, res.Errors[0].Message, "Invalid assert expression")
	assert.Equal(t, "C", res.Errors[1].ControlID)
	assert.Contains(t, res.Errors[1].Message, "must be boolean")
}

func TestValidateBytesTopLevel(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"syntax", "controls: [\n", "Invalid YAML syntax"},
		{"empty document", "", "No controls found in file"},
		{"no controls key", "version: 1\n", "No controls found in file"},
		{"empty list", "controls: []\n", "No controls found in file"},
		{"controls not a list", "controls:\n  a: 1\n", "Invalid catalog structure"},
		{"items not objects", "controls:\n  - GOV-01\n", "Invalid catalog structure"},
		{"root not a mapping", "- a\n- b\n", "Invalid catalog structure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateBytes([]byte(tt.doc), false)
			assert.False(t, res.Valid)
			assert.Contains(t, res.Error, tt.want)
			assert.Zero(t, res.ControlsCount)
			assert.Empty(t, res.Errors)
		})
	}
}

func TestValidateFileSampleCatalog(t *testing.T) {
	res, err := ValidateFile(filepath.Join("..", "..", "controls", "controls.yaml"), true)
	require.NoError(t, err)
	assert.True(t, res.Valid, "%+v", res.Errors)
	assert.Equal(t, 15, res.ControlsCount)

	_, err = ValidateFile(filepath.Join(t.TempDir(), "nope.yaml"), false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	doc := `controls:
  - id: GOV-01
    title: Owner
    requirement: Has owner
    evidence: system_profile.owner
    severity: high
    nist_ai_rmf: [GOVERN 2.1]
    eu_ai_act_article: Art. 16
  - id: X-1
    title: Retention
    requirement: Long retention
    evidence: system_profile.logging.retention_days
    severity: medium
    assert: value >= 90
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Controls, 2)
	assert.Equal(t, "owner", c.Controls[0].EvidencePath())
	assert.Equal(t, []string{"GOVERN 2.1"}, c.Controls[0].NISTMapping)
	assert.Equal(t, "value >= 90", c.Controls[1].Assert)

	got, ok := c.ByID("X-1")
	assert.True(t, ok)
	assert.Equal(t, "Retention", got.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssertion(t *testing.T) {
	a, err := CompileAssertion("value >= 90")
	require.NoError(t, err)
	ok, err := a.Eval(int64(120))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Eval(int64(30))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = a.Eval(nil)
	assert.Error(t, err)

	m, err := CompileAssertion("has(value.sources) && size(value.sources) > 1")
	require.NoError(t, err)
	ok, err = m.Eval(map[string]any{"sources": []any{"a", "b"}})
	require.NoError(t, err)
	assert.True(t, ok)
}
