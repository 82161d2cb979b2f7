// Package remediation holds the static control-ID → guidance table and turns
// failed verdicts into a prioritized remediation plan.
package remediation

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"ai-governance-controls/internal/model"
)

//go:embed guidance.yaml
var defaultGuidance []byte

// Entry is the guidance for one control.
type Entry struct {
	Steps     []string `yaml:"steps" json:"steps"`
	Artifacts []string `yaml:"artifacts" json:"artifacts"`
}

// Table maps control IDs to guidance. It is read-only once built.
type Table struct {
	entries map[string]Entry
}

// Default returns the built-in guidance table. It panics only if the
// embedded document is malformed, which a test guards against.
func Default() *Table {
	t, err := Parse(defaultGuidance)
	if err != nil {
		panic(fmt.Sprintf("remediation: embedded guidance: %v", err))
	}
	return t
}

// Load reads a guidance table from a YAML file with the same shape as the
// embedded one.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guidance: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Table, error) {
	var entries map[string]Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse guidance: %w", err)
	}
	if entries == nil {
		entries = map[string]Entry{}
	}
	return &Table{entries: entries}, nil
}

// Lookup returns copies of the steps and artifacts for id. Unknown IDs
// yield empty, non-nil lists.
func (t *Table) Lookup(id string) (steps, artifacts []string) {
	if t == nil {
		return []string{}, []string{}
	}
	e := t.entries[id]
	return append([]string{}, e.Steps...), append([]string{}, e.Artifacts...)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// IDs returns the covered control IDs in sorted order.
func (t *Table) IDs() []string {
	if t == nil {
		return nil
	}
	ids := make([]string, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Plan produces one step per failed verdict, most severe first. Verdicts of
// equal severity keep catalog order.
func Plan(verdicts []model.Verdict) []model.RemediationStep {
	var steps []model.RemediationStep
	for _, v := range verdicts {
		if v.Passed {
			continue
		}
		steps = append(steps, model.RemediationStep{
			Priority:  priority(v.Severity),
			ControlID: v.ID,
			Title:     v.Title,
			Severity:  v.Severity,
			Steps:     v.RemediationSteps,
			Artifacts: v.RequiredArtifacts,
		})
	}

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Priority < steps[j].Priority
	})
	return steps
}

// priority maps critical→1 .. low→4; unknown severities sort last.
func priority(severity string) int {
	lvl := model.Severity(severity).Level()
	if lvl == 0 {
		return 5
	}
	return 5 - lvl
}
