package model

type ScoreSummary struct {
	Total         int                         `json:"total_controls"`
	Passed        int                         `json:"passed"`
	Failed        int                         `json:"failed"`
	PassRate      float64                     `json:"pass_rate"`
	WeightedScore float64                     `json:"weighted_score"`
	BySeverity    map[Severity]SeverityBucket `json:"by_severity"`
}

// HighFailures is the failed count of the high bucket, 0 when absent.
func (s ScoreSummary) HighFailures() int {
	return s.BySeverity[SeverityHigh].Failed
}

// BatchItem is one row of a multi-profile evaluation.
type BatchItem struct {
	Profile       string  `json:"profile"`
	SystemName    string  `json:"system_name,omitempty"`
	PassRate      float64 `json:"pass_rate"`
	WeightedScore float64 `json:"weighted_score"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	HighFailures  int     `json:"high_failures"`
	Error         string  `json:"error,omitempty"`
}

type BatchResult struct {
	Items []BatchItem `json:"batch_results"`
}

// Failing reports whether any item errored or has a high-severity failure.
func (b BatchResult) Failing() bool {
	for _, it := range b.Items {
		if it.Error != "" || it.HighFailures > 0 {
			return true
		}
	}
	return false
}
