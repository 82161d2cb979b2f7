package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-governance-controls/internal/catalog"
	"ai-governance-controls/internal/evaluate"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/risk"
	"ai-governance-controls/internal/score"
)

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Controls: len(s.controls), Version: s.version})
}

// handleEvaluate handles POST /v1/evaluate.
//
//	200 OK: EvaluateResponse
//	400 Bad Request: malformed body or profile
func (s *Server) handleEvaluate(c *gin.Context) {
	var req EvaluateRequest
	if !s.bind(c, &req) {
		return
	}
	root, ok := s.profile(c, req.Profile)
	if !ok {
		return
	}

	verdicts := s.evaluator.Evaluate(s.controls, root, evaluate.Options{
		MinSeverity: req.MinSeverity,
		FailedOnly:  req.FailedOnly,
	})
	summary := score.Aggregate(verdicts)
	s.metrics.ObserveEvaluation(profile.Field(root, "system_name", "Unknown"), summary)

	c.JSON(http.StatusOK, EvaluateResponse{Controls: verdicts, Summary: summary})
}

// handleClassify handles POST /v1/classify. The checklist result is
// included only for high-tier systems.
func (s *Server) handleClassify(c *gin.Context) {
	var req ProfileRequest
	if !s.bind(c, &req) {
		return
	}
	root, ok := s.profile(c, req.Profile)
	if !ok {
		return
	}

	resp := ClassifyResponse{Classification: s.classifier.Classify(root)}
	if resp.Classification.Tier == model.TierHigh {
		cr := risk.CheckHighRisk(root)
		resp.HighRiskCompliance = &cr
	}
	s.metrics.ObserveClassification(profile.Field(root, "system_name", "Unknown"), resp.Classification.Tier, resp.HighRiskCompliance)

	c.JSON(http.StatusOK, resp)
}

// handleValidate handles POST /v1/validate. An invalid catalog is still a
// 200; the verdict is in the body.
func (s *Server) handleValidate(c *gin.Context) {
	var req ValidateRequest
	if !s.bind(c, &req) {
		return
	}
	res := catalog.ValidateBytes([]byte(req.Catalog), req.Strict)
	s.log(c).Debug("catalog validated", "valid", res.Valid, "errors", len(res.Errors))
	c.JSON(http.StatusOK, res)
}

// handleReport handles POST /v1/report.
func (s *Server) handleReport(c *gin.Context) {
	var req ProfileRequest
	if !s.bind(c, &req) {
		return
	}
	root, ok := s.profile(c, req.Profile)
	if !ok {
		return
	}

	rep := s.reports.Build(s.controls, root)
	s.metrics.ObserveReport(rep)
	c.JSON(http.StatusOK, rep)
}

func (s *Server) bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	s.log(c).Warn("Invalid request body", "error", err)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large", Code: "BODY_TOO_LARGE"})
		return false
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error(), Code: "INVALID_REQUEST"})
	return false
}

func (s *Server) profile(c *gin.Context, raw json.RawMessage) (profile.Value, bool) {
	root, err := profile.Parse(raw, profile.FormatJSON)
	if err != nil {
		s.log(c).Warn("Invalid profile", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_PROFILE"})
		return profile.Value{}, false
	}
	return root, true
}
