package model

type IssueType string

const (
	IssueError   IssueType = "error"
	IssueWarning IssueType = "warning"
)

// Issue is one catalog validation finding.
type Issue struct {
	ControlID string    `json:"control_id"`
	Message   string    `json:"message"`
	Type      IssueType `json:"type"`
}

// ValidationResult is the outcome of checking a controls catalog.
// Error is set when the document could not be examined at all; Errors and
// Warnings are then empty.
type ValidationResult struct {
	Valid                bool           `json:"valid"`
	Error                string         `json:"error,omitempty"`
	ControlsCount        int            `json:"controls_count"`
	Errors               []Issue        `json:"errors"`
	Warnings             []Issue        `json:"warnings"`
	SeverityDistribution map[string]int `json:"severity_distribution,omitempty"`
	ValidatedAt          string         `json:"validated_at,omitempty"`
}
