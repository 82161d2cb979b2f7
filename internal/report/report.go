// Package report combines control evaluation and risk classification into a
// single compliance report with a deployment recommendation.
package report

import (
	"fmt"
	"time"

	"ai-governance-controls/internal/evaluate"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/risk"
	"ai-governance-controls/internal/score"
)

// MinimumPassRate is the coverage threshold below which the recommendation
// asks for more controls to be met.
const MinimumPassRate = 80.0

type Option func(*Builder)

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDs overrides the report ID generator.
func WithIDs(next func() string) Option {
	return func(b *Builder) { b.newID = next }
}

type Builder struct {
	evaluator  *evaluate.Evaluator
	classifier *risk.Classifier
	now        func() time.Time
	newID      func() string
}

func NewBuilder(e *evaluate.Evaluator, c *risk.Classifier, opts ...Option) *Builder {
	b := &Builder{
		evaluator:  e,
		classifier: c,
		now:        time.Now,
		newID:      model.NewUUID,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build evaluates every control (no filters) and classifies the profile.
func (b *Builder) Build(controls []model.Control, root profile.Value) model.Report {
	verdicts := b.evaluator.Evaluate(controls, root, evaluate.Options{})
	summary := score.Aggregate(verdicts)
	class := b.classifier.Classify(root)

	var compliance *model.ComplianceResult
	if class.Tier == model.TierHigh {
		c := risk.CheckHighRisk(root)
		compliance = &c
	}

	outcomes := make([]model.ControlOutcome, 0, len(verdicts))
	failed := make([]model.FailedControl, 0)
	for _, v := range verdicts {
		outcomes = append(outcomes, model.NewOutcome(v))
		if !v.Passed {
			failed = append(failed, model.NewFailedControl(v))
		}
	}

	return model.Report{
		Metadata: model.ReportMetadata{
			ReportID:          b.newID(),
			SystemName:        profile.Field(root, "system_name", "Unknown"),
			SystemDescription: profile.Field(root, "system_description", ""),
			GeneratedAt:       model.Timestamp(b.now()),
			ControlsVersion:   model.ControlsVersion,
		},
		ExecutiveSummary: model.ExecutiveSummary{
			OverallPassRate:      summary.PassRate,
			WeightedScore:        summary.WeightedScore,
			RiskTier:             class.Tier,
			HighSeverityFailures: summary.HighFailures(),
			TotalControls:        summary.Total,
			Recommendation:       Recommendation(summary, class.Tier),
		},
		ControlEvaluation: model.ControlEvaluation{
			Summary:        summary,
			Controls:       outcomes,
			FailedControls: failed,
		},
		RiskClassification: model.RiskClassification{
			Tier:               class.Tier,
			Reasons:            class.Reasons,
			Obligations:        class.Obligations,
			DeclaredTier:       class.DeclaredTier,
			HighRiskCompliance: compliance,
		},
	}
}

// Recommendation picks the first matching rule: prohibited tier, high
// severity failures, low coverage, high tier, otherwise baseline.
func Recommendation(s model.ScoreSummary, tier model.Tier) string {
	switch {
	case tier == model.TierUnacceptable:
		return "CRITICAL: System uses prohibited AI practices. Deployment not permitted under EU AI Act."
	case s.HighFailures() > 0:
		return fmt.Sprintf("Address %d high-severity control failure(s) before production deployment.", s.HighFailures())
	case s.PassRate < MinimumPassRate:
		return "Improve control coverage to meet minimum compliance threshold of 80%."
	case tier == model.TierHigh:
		return "High-risk system - ensure ongoing compliance monitoring and annual reassessment."
	default:
		return "System meets baseline governance requirements. Continue periodic reviews."
	}
}
