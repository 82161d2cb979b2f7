package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, doc string) Value {
	t.Helper()
	v, err := Parse([]byte(doc), FormatJSON)
	require.NoError(t, err)
	return v
}

func TestResolve(t *testing.T) {
	root := mustParse(t, `{"a": {"b": {"c": 5}}, "owner": "Jane", "x": [1, 2]}`)

	tests := []struct {
		name string
		path string
		want Value
	}{
		{"nested", "a.b.c", IntValue(5)},
		{"top level", "owner", StringValue("Jane")},
		{"missing leaf", "a.b.d", NullValue()},
		{"missing root key", "nope", NullValue()},
		{"non-map intermediate", "owner.name", NullValue()},
		{"list intermediate", "x.0", NullValue()},
		{"empty segment", "a..b", NullValue()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(root, tt.path)
			assert.True(t, tt.want.Equal(got), "Resolve(%q) = %s, want %s", tt.path, got, tt.want)
		})
	}
}

func TestResolveReturnsSubtree(t *testing.T) {
	root := mustParse(t, `{"logging": {"enabled": true, "retention_days": 90}}`)
	got := Resolve(root, "logging")
	require.Equal(t, Map, got.Kind())
	assert.Equal(t, []string{"enabled", "retention_days"}, got.Keys())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{"null", `null`, false},
		{"true", `true`, true},
		{"false", `false`, false},
		{"zero int", `0`, true},
		{"zero float", `0.0`, true},
		{"negative", `-3`, true},
		{"empty string", `""`, false},
		{"string", `"Jane Doe"`, true},
		{"empty list", `[]`, false},
		{"list", `["user_data"]`, true},
		{"empty map", `{}`, false},
		{"map without indicator", `{"name": "x"}`, true},
		{"exists false wins", `{"exists": false, "url": "https://x"}`, false},
		{"exists true", `{"exists": true}`, true},
		{"enabled false", `{"enabled": false, "retention_days": 90}`, false},
		{"conducted true", `{"conducted": true}`, true},
		{"documented false", `{"documented": false, "sources": ["a"]}`, false},
		{"exists beats enabled", `{"exists": true, "enabled": false}`, true},
		{"enabled beats conducted", `{"enabled": false, "conducted": true}`, false},
		{"indicator is cast", `{"exists": "yes"}`, true},
		{"indicator empty string", `{"exists": ""}`, false},
		{"indicator zero", `{"enabled": 0}`, false},
		{"indicator null", `{"documented": null}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &v))
			assert.Equal(t, tt.want, v.Truthy())
		})
	}
}

func TestBoolCast(t *testing.T) {
	assert.False(t, IntValue(0).Bool())
	assert.True(t, IntValue(7).Bool())
	assert.False(t, FloatValue(0).Bool())
	assert.False(t, StringValue("").Bool())
	assert.True(t, StringValue("x").Bool())
	assert.False(t, NullValue().Bool())
	assert.False(t, ListValue().Bool())
	assert.True(t, MapValue(map[string]Value{"exists": BoolValue(false)}).Bool())
}

func TestFromAnyYAMLShapes(t *testing.T) {
	v := FromAny(map[any]any{"a": []any{1, "b", nil}, 2: 1.5})
	require.Equal(t, Map, v.Kind())
	assert.True(t, Resolve(v, "2").Equal(FloatValue(1.5)))
	items := Resolve(v, "a").Items()
	require.Len(t, items, 3)
	assert.Equal(t, Int, items[0].Kind())
	assert.True(t, items[2].IsNull())
}

func TestParseKeepsIntegers(t *testing.T) {
	root := mustParse(t, `{"logging": {"retention_days": 90, "rate": 0.5}}`)
	assert.Equal(t, Int, Resolve(root, "logging.retention_days").Kind())
	assert.Equal(t, Float, Resolve(root, "logging.rate").Kind())
}

func TestParseRejectsNonMap(t *testing.T) {
	_, err := Parse([]byte(`[1, 2]`), FormatJSON)
	assert.ErrorIs(t, err, ErrNotMap)

	_, err = Parse([]byte(`{"a": 1} {"b": 2}`), FormatJSON)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "p.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("system_name: Demo\nlogging:\n  enabled: true\n"), 0o644))
	v, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Demo", Field(v, "system_name", "Unknown"))
	assert.True(t, Resolve(v, "logging").Truthy())

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "missing.json")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestField(t *testing.T) {
	root := mustParse(t, `{"system_name": 42}`)
	assert.Equal(t, "Unknown", Field(root, "system_name", "Unknown"))
	assert.Equal(t, "", Field(root, "system_description", ""))
}

func TestValueJSON(t *testing.T) {
	root := mustParse(t, `{"b": [true, null, 1.5], "a": "x"}`)
	raw, err := json.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": "x", "b": [true, null, 1.5]}`, string(raw))
	assert.Equal(t, "null", NullValue().String())
	assert.Equal(t, "x", StringValue("x").String())
	assert.Equal(t, `{"exists":true}`, MapValue(map[string]Value{"exists": BoolValue(true)}).String())
}

func TestTemplate(t *testing.T) {
	v, err := Parse(Template(), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "Your System Name", Field(v, "system_name", ""))
	// A blank template satisfies no indicator-backed control.
	for _, path := range []string{"logging", "change_control", "ir_playbook", "model_card", "fairness_eval", "human_oversight"} {
		assert.False(t, Resolve(v, path).Truthy(), path)
	}
	assert.Contains(t, FieldGuide(), "System Profile Field Guide")

	out := filepath.Join(t.TempDir(), "tpl.json")
	require.NoError(t, WriteTemplate(out, false))
	assert.Error(t, WriteTemplate(out, false))
	assert.NoError(t, WriteTemplate(out, true))
}
