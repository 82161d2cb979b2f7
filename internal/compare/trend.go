package compare

import (
	"math"

	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/score"
)

const epsilon = 0.00001

// Compute describes the move from prev to curr. Percent change is 0 when
// prev is 0.
func Compute(prev, curr float64) model.Trend {
	d := curr - prev

	dir := model.Flat
	if d > epsilon {
		dir = model.Up
	} else if d < -epsilon {
		dir = model.Down
	}

	dp := 0.0
	if math.Abs(prev) > epsilon {
		dp = (d / prev) * 100.0
	}

	return model.Trend{
		DeltaScore:   score.Round(d),
		DeltaPercent: score.Round(dp),
		Direction:    dir,
		From:         prev,
		To:           curr,
	}
}
