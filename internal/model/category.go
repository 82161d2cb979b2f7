package model

import "strings"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities is the accepted vocabulary, lowest first.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// BucketSeverities are the severities broken out in score summaries.
// Critical is intentionally absent.
var BucketSeverities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

func NormalizeSeverity(s string) Severity {
	return Severity(strings.ToLower(strings.TrimSpace(s)))
}

// Level is the ordinal used for minimum-severity filtering; unknown is 0.
func (s Severity) Level() int {
	switch NormalizeSeverity(string(s)) {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

func (s Severity) Valid() bool {
	return s.Level() > 0
}

// SeverityBucket counts verdicts of one severity.
type SeverityBucket struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}
