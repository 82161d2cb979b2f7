// Package score aggregates verdicts into pass-rate and severity-weighted
// scores.
package score

import (
	"strconv"

	"ai-governance-controls/internal/model"
)

// Aggregate summarises verdicts. Rates are percentages rounded to one
// decimal and are 0 when there is nothing to divide by.
func Aggregate(verdicts []model.Verdict) model.ScoreSummary {
	s := model.ScoreSummary{
		Total:      len(verdicts),
		BySeverity: map[model.Severity]model.SeverityBucket{},
	}

	totalWeight, earnedWeight := 0, 0
	for _, v := range verdicts {
		totalWeight += v.Weight
		if v.Passed {
			s.Passed++
			earnedWeight += v.Weight
		}
	}
	s.Failed = s.Total - s.Passed
	s.PassRate = Percent(s.Passed, s.Total)
	s.WeightedScore = Percent(earnedWeight, totalWeight)

	for _, sev := range model.BucketSeverities {
		var b model.SeverityBucket
		for _, v := range verdicts {
			if model.NormalizeSeverity(v.Severity) != sev {
				continue
			}
			b.Total++
			if v.Passed {
				b.Passed++
			} else {
				b.Failed++
			}
		}
		if b.Total > 0 {
			s.BySeverity[sev] = b
		}
	}
	return s
}

// Percent is round(part/whole*100, 1), or 0 for an empty whole.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return Round(float64(part) / float64(whole) * 100)
}

// Round rounds the exact binary value to one decimal, ties to even, so 12.25
// becomes 12.2 and 0.15 (stored just below) becomes 0.1.
func Round(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return r
}
