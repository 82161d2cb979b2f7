package model

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

type Trend struct {
	DeltaScore   float64   `json:"deltaScore"`
	DeltaPercent float64   `json:"deltaPercent"`
	Direction    Direction `json:"direction"`
	From         float64   `json:"from"`
	To           float64   `json:"to"`
}

// ControlRef identifies a control in a comparison.
type ControlRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Severity string `json:"severity"`
}

// Comparison is the verdict delta between a baseline and a current profile
// evaluated against the same catalog.
type Comparison struct {
	Baseline      string       `json:"baseline"`
	Current       string       `json:"current"`
	PassRate      Trend        `json:"pass_rate"`
	WeightedScore Trend        `json:"weighted_score"`
	NewFailures   []ControlRef `json:"new_failures"`
	Resolved      []ControlRef `json:"resolved"`
	Added         []string     `json:"added_controls,omitempty"`
	Removed       []string     `json:"removed_controls,omitempty"`
}
