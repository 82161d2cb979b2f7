package model

import (
	"time"

	"github.com/google/uuid"
)

// ControlsVersion is stamped into combined reports.
const ControlsVersion = "1.0"

// Report is the combined evaluation and classification document.
type Report struct {
	Metadata           ReportMetadata     `json:"metadata"`
	ExecutiveSummary   ExecutiveSummary   `json:"executive_summary"`
	ControlEvaluation  ControlEvaluation  `json:"control_evaluation"`
	RiskClassification RiskClassification `json:"risk_classification"`
}

type ReportMetadata struct {
	ReportID          string `json:"report_id"`
	SystemName        string `json:"system_name"`
	SystemDescription string `json:"system_description"`
	GeneratedAt       string `json:"generated_at"`
	ControlsVersion   string `json:"controls_version"`
}

type ExecutiveSummary struct {
	OverallPassRate      float64 `json:"overall_pass_rate"`
	WeightedScore        float64 `json:"weighted_score"`
	RiskTier             Tier    `json:"risk_tier"`
	HighSeverityFailures int     `json:"high_severity_failures"`
	TotalControls        int     `json:"total_controls"`
	Recommendation       string  `json:"recommendation"`
}

type ControlEvaluation struct {
	Summary        ScoreSummary     `json:"summary"`
	Controls       []ControlOutcome `json:"controls"`
	FailedControls []FailedControl  `json:"failed_controls"`
}

// ControlOutcome is the per-control line of a combined report.
type ControlOutcome struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Severity     string   `json:"severity"`
	Passed       bool     `json:"passed"`
	EvidencePath string   `json:"evidence_path"`
	NISTMapping  []string `json:"nist_mapping"`
	EUArticle    string   `json:"eu_article"`
}

// FailedControl carries the remediation of one failed verdict.
type FailedControl struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Severity          string   `json:"severity"`
	RemediationSteps  []string `json:"remediation_steps"`
	RequiredArtifacts []string `json:"required_artifacts"`
}

type RiskClassification struct {
	Tier               Tier              `json:"tier"`
	Reasons            []string          `json:"reasons"`
	Obligations        []string          `json:"obligations"`
	DeclaredTier       string            `json:"declared_tier,omitempty"`
	HighRiskCompliance *ComplianceResult `json:"high_risk_compliance"`
}

func NewOutcome(v Verdict) ControlOutcome {
	return ControlOutcome{
		ID:           v.ID,
		Title:        v.Title,
		Severity:     v.Severity,
		Passed:       v.Passed,
		EvidencePath: v.EvidencePath,
		NISTMapping:  nonNil(v.NISTMapping),
		EUArticle:    v.EUArticle,
	}
}

func NewFailedControl(v Verdict) FailedControl {
	return FailedControl{
		ID:                v.ID,
		Title:             v.Title,
		Severity:          v.Severity,
		RemediationSteps:  nonNil(v.RemediationSteps),
		RequiredArtifacts: nonNil(v.RequiredArtifacts),
	}
}

// NewUUID returns a random report identifier.
func NewUUID() string {
	return uuid.NewString()
}

// Timestamp formats t the way every document in this module does.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
