package evaluate

import "ai-governance-controls/internal/model"

// defaultWeight applies to severities outside the vocabulary.
const defaultWeight = 1

// Weights maps a severity to its contribution to the weighted score.
type Weights map[model.Severity]int

func DefaultWeights() Weights {
	return Weights{
		model.SeverityCritical: 4,
		model.SeverityHigh:     3,
		model.SeverityMedium:   2,
		model.SeverityLow:      1,
	}
}

// For returns the weight of severity, case-insensitively.
func (w Weights) For(severity string) int {
	if v, ok := w[model.NormalizeSeverity(severity)]; ok {
		return v
	}
	return defaultWeight
}
