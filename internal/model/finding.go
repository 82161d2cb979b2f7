package model

import "ai-governance-controls/internal/profile"

// Verdict is the outcome of evaluating one control against one profile.
type Verdict struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Requirement       string        `json:"requirement"`
	Severity          string        `json:"severity"`
	Weight            int           `json:"weight"`
	Passed            bool          `json:"passed"`
	EvidencePath      string        `json:"evidence_path"`
	EvidenceValue     profile.Value `json:"evidence_value"`
	NISTMapping       []string      `json:"nist_mapping"`
	EUArticle         string        `json:"eu_article"`
	RemediationSteps  []string      `json:"remediation_steps"`
	RequiredArtifacts []string      `json:"required_artifacts"`
}

// Failed returns the verdicts that did not pass, in order.
func Failed(verdicts []Verdict) []Verdict {
	out := make([]Verdict, 0, len(verdicts))
	for _, v := range verdicts {
		if !v.Passed {
			out = append(out, v)
		}
	}
	return out
}

// RemediationStep is one prioritized action in a remediation plan.
type RemediationStep struct {
	Priority  int      `json:"priority"` // 1=critical .. 4=low
	ControlID string   `json:"controlId"`
	Title     string   `json:"title"`
	Severity  string   `json:"severity"`
	Steps     []string `json:"steps"`
	Artifacts []string `json:"artifacts,omitempty"`
}
