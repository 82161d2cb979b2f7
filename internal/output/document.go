// Package output renders evaluations, classifications and reports for
// consoles and files.
package output

import (
	"time"

	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/score"
)

// Evaluation is everything a renderer needs for one profile evaluation.
type Evaluation struct {
	SystemName        string
	SystemDescription string
	EvaluatedAt       time.Time
	Verdicts          []model.Verdict
	Summary           model.ScoreSummary
}

func NewEvaluation(root profile.Value, verdicts []model.Verdict, at time.Time) Evaluation {
	return Evaluation{
		SystemName:        profile.Field(root, "system_name", "Unknown"),
		SystemDescription: profile.Field(root, "system_description", ""),
		EvaluatedAt:       at,
		Verdicts:          verdicts,
		Summary:           score.Aggregate(verdicts),
	}
}

// Classification is a risk-tier result with the profile it came from.
// Compliance is set only for high-tier systems.
type Classification struct {
	SystemName        string
	SystemDescription string
	ClassifiedAt      time.Time
	Result            model.Classification
	Compliance        *model.ComplianceResult
}

type evaluationDoc struct {
	Metadata       evaluationMeta        `json:"metadata"`
	Summary        summaryDoc            `json:"summary"`
	Controls       []controlDoc          `json:"controls"`
	FailedControls []model.FailedControl `json:"failed_controls"`
}

type evaluationMeta struct {
	SystemName        string `json:"system_name"`
	SystemDescription string `json:"system_description"`
	EvaluatedAt       string `json:"evaluated_at"`
	ControlsEvaluated int    `json:"controls_evaluated"`
}

type summaryDoc struct {
	PassRate      float64                                 `json:"pass_rate"`
	WeightedScore float64                                 `json:"weighted_score"`
	TotalControls int                                     `json:"total_controls"`
	Passed        int                                     `json:"passed"`
	Failed        int                                     `json:"failed"`
	BySeverity    map[model.Severity]model.SeverityBucket `json:"by_severity"`
}

type controlDoc struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Requirement   string          `json:"requirement"`
	Severity      string          `json:"severity"`
	Passed        bool            `json:"passed"`
	EvidencePath  string          `json:"evidence_path"`
	EvidenceValue profile.Value   `json:"evidence_value"`
	NISTMapping   []string        `json:"nist_mapping"`
	EUArticle     string          `json:"eu_article"`
	Remediation   *remediationDoc `json:"remediation"`
}

type remediationDoc struct {
	Steps     []string `json:"steps"`
	Artifacts []string `json:"artifacts"`
}

func (e Evaluation) document() evaluationDoc {
	d := evaluationDoc{
		Metadata: evaluationMeta{
			SystemName:        e.SystemName,
			SystemDescription: e.SystemDescription,
			EvaluatedAt:       model.Timestamp(e.EvaluatedAt),
			ControlsEvaluated: e.Summary.Total,
		},
		Summary: summaryDoc{
			PassRate:      e.Summary.PassRate,
			WeightedScore: e.Summary.WeightedScore,
			TotalControls: e.Summary.Total,
			Passed:        e.Summary.Passed,
			Failed:        e.Summary.Failed,
			BySeverity:    e.Summary.BySeverity,
		},
		Controls:       make([]controlDoc, 0, len(e.Verdicts)),
		FailedControls: []model.FailedControl{},
	}
	if d.Summary.BySeverity == nil {
		d.Summary.BySeverity = map[model.Severity]model.SeverityBucket{}
	}
	for _, v := range e.Verdicts {
		c := controlDoc{
			ID:            v.ID,
			Title:         v.Title,
			Requirement:   v.Requirement,
			Severity:      v.Severity,
			Passed:        v.Passed,
			EvidencePath:  v.EvidencePath,
			EvidenceValue: v.EvidenceValue,
			NISTMapping:   strs(v.NISTMapping),
			EUArticle:     v.EUArticle,
		}
		if !v.Passed {
			c.Remediation = &remediationDoc{Steps: strs(v.RemediationSteps), Artifacts: strs(v.RequiredArtifacts)}
			d.FailedControls = append(d.FailedControls, model.NewFailedControl(v))
		}
		d.Controls = append(d.Controls, c)
	}
	return d
}

type classificationDoc struct {
	Metadata           classificationMeta      `json:"metadata"`
	Classification     classificationBody      `json:"classification"`
	HighRiskCompliance *model.ComplianceResult `json:"high_risk_compliance,omitempty"`
}

type classificationMeta struct {
	SystemName        string `json:"system_name"`
	SystemDescription string `json:"system_description"`
	ClassifiedAt      string `json:"classified_at"`
}

type classificationBody struct {
	RiskTier     model.Tier    `json:"risk_tier"`
	Reasons      []string      `json:"reasons"`
	Obligations  []string      `json:"obligations"`
	Matches      []model.Match `json:"matches,omitempty"`
	DeclaredTier string        `json:"declared_tier,omitempty"`
}

func (c Classification) document() classificationDoc {
	return classificationDoc{
		Metadata: classificationMeta{
			SystemName:        c.SystemName,
			SystemDescription: c.SystemDescription,
			ClassifiedAt:      model.Timestamp(c.ClassifiedAt),
		},
		Classification: classificationBody{
			RiskTier:     c.Result.Tier,
			Reasons:      strs(c.Result.Reasons),
			Obligations:  strs(c.Result.Obligations),
			Matches:      c.Result.Matches,
			DeclaredTier: c.Result.DeclaredTier,
		},
		HighRiskCompliance: c.Compliance,
	}
}

func strs(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// severityRate is the pass rate of one severity bucket.
func severityRate(b model.SeverityBucket) float64 {
	return score.Percent(b.Passed, b.Total)
}
