package model

import "strings"

// EvidencePrefix is the namespace every control evidence path starts with.
const EvidencePrefix = "system_profile."

// Control is one governance requirement from the catalog.
// Keep it simple: these fields are shown directly in reports.
type Control struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Requirement string   `yaml:"requirement" json:"requirement"`
	Evidence    string   `yaml:"evidence" json:"evidence"`
	Severity    string   `yaml:"severity" json:"severity"`
	NISTMapping []string `yaml:"nist_ai_rmf,omitempty" json:"nist_ai_rmf,omitempty"`
	EUArticle   string   `yaml:"eu_ai_act_article,omitempty" json:"eu_ai_act_article,omitempty"`
	// Assert is an optional CEL expression over `value` (the resolved
	// evidence). Without one, evidence truthiness decides the verdict.
	Assert string `yaml:"assert,omitempty" json:"assert,omitempty"`
}

// EvidencePath is the evidence reference with the leading namespace removed.
// Only the first occurrence at the start is stripped.
func (c Control) EvidencePath() string {
	return strings.TrimPrefix(c.Evidence, EvidencePrefix)
}
