package server

import (
	"encoding/json"

	"ai-governance-controls/internal/model"
)

// EvaluateRequest is the body of POST /v1/evaluate.
type EvaluateRequest struct {
	// Profile is the system profile document, a JSON object.
	Profile     json.RawMessage `json:"profile" binding:"required"`
	MinSeverity string          `json:"min_severity" binding:"omitempty,oneof=low medium high critical LOW MEDIUM HIGH CRITICAL"`
	FailedOnly  bool            `json:"failed_only"`
}

type EvaluateResponse struct {
	Controls []model.Verdict    `json:"controls"`
	Summary  model.ScoreSummary `json:"summary"`
}

// ProfileRequest is the body of POST /v1/classify and POST /v1/report.
type ProfileRequest struct {
	Profile json.RawMessage `json:"profile" binding:"required"`
}

type ClassifyResponse struct {
	Classification     model.Classification    `json:"classification"`
	HighRiskCompliance *model.ComplianceResult `json:"high_risk_compliance,omitempty"`
}

// ValidateRequest carries a controls catalog as YAML text.
type ValidateRequest struct {
	Catalog string `json:"catalog" binding:"required"`
	Strict  bool   `json:"strict"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Controls int    `json:"controls"`
	Version  string `json:"version"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
