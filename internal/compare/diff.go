// Package compare diffs two evaluations of the same catalog.
package compare

import (
	"sort"

	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/score"
)

// Diff compares the baseline verdicts against the current ones. Controls
// that only one side evaluated are listed as added or removed and do not
// count as new failures or resolutions.
func Diff(baselineName string, prev []model.Verdict, currentName string, curr []model.Verdict) model.Comparison {
	prevSum := score.Aggregate(prev)
	currSum := score.Aggregate(curr)

	r := model.Comparison{
		Baseline:      baselineName,
		Current:       currentName,
		PassRate:      Compute(prevSum.PassRate, currSum.PassRate),
		WeightedScore: Compute(prevSum.WeightedScore, currSum.WeightedScore),
		NewFailures:   []model.ControlRef{},
		Resolved:      []model.ControlRef{},
	}

	prevSet := verdictSet(prev)
	currSet := verdictSet(curr)

	// Walk current in order so new failures keep catalog order.
	for _, v := range curr {
		p, ok := prevSet[v.ID]
		if !ok {
			r.Added = append(r.Added, v.ID)
			continue
		}
		switch {
		case p.Passed && !v.Passed:
			r.NewFailures = append(r.NewFailures, ref(v))
		case !p.Passed && v.Passed:
			r.Resolved = append(r.Resolved, ref(v))
		}
	}
	for id := range prevSet {
		if _, ok := currSet[id]; !ok {
			r.Removed = append(r.Removed, id)
		}
	}
	sort.Strings(r.Removed)

	return r
}

// Regressed reports whether any control went from pass to fail.
func Regressed(c model.Comparison) bool {
	return len(c.NewFailures) > 0
}

func verdictSet(vs []model.Verdict) map[string]model.Verdict {
	m := make(map[string]model.Verdict, len(vs))
	for _, v := range vs {
		m[v.ID] = v
	}
	return m
}

func ref(v model.Verdict) model.ControlRef {
	return model.ControlRef{ID: v.ID, Title: v.Title, Severity: v.Severity}
}
