package risk

import (
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/score"
)

// GapMessage follows each failed check in compliance reports.
const GapMessage = "Evidence missing or insufficient"

type requirement struct {
	name  string
	label string
	path  string
}

// highRiskChecklist is evaluated in this order.
var highRiskChecklist = []requirement{
	{"risk_management", "Risk Management System (Art. 9)", "ir_playbook.exists"},
	{"data_governance", "Data Governance (Art. 10)", "data_provenance.documented"},
	{"technical_documentation", "Technical Documentation (Art. 11)", "model_card.exists"},
	{"record_keeping", "Record-Keeping (Art. 12)", "logging.enabled"},
	{"transparency", "Transparency (Art. 13)", "transparency.user_informed_of_ai"},
	{"human_oversight", "Human Oversight (Art. 14)", "human_oversight.exists"},
	{"accuracy_testing", "Accuracy/Fairness Testing (Art. 15)", "fairness_eval.conducted"},
}

// CheckHighRisk runs the seven-item checklist. Each item is the plain
// boolean cast of one profile field, not the evidence truthiness rules.
func CheckHighRisk(root profile.Value) model.ComplianceResult {
	res := model.ComplianceResult{
		Checks: make(model.ComplianceChecks, 0, len(highRiskChecklist)),
		Total:  len(highRiskChecklist),
	}
	for _, r := range highRiskChecklist {
		ok := profile.Resolve(root, r.path).Bool()
		if ok {
			res.Passed++
		}
		res.Checks = append(res.Checks, model.ComplianceCheck{Name: r.name, Label: r.label, Passed: ok})
	}
	res.ComplianceRate = score.Percent(res.Passed, res.Total)
	return res
}
