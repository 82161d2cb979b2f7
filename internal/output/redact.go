package output

import (
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
)

// Redacted replaces identifying text in shared reports.
const Redacted = "[redacted]"

// Redact returns a copy of the report with the system identity replaced.
// Scores, verdicts and the classification are preserved; the report ID is
// kept so a redacted copy can be matched to its original.
func Redact(r model.Report) model.Report {
	out := r
	out.Metadata.SystemName = Redacted
	if out.Metadata.SystemDescription != "" {
		out.Metadata.SystemDescription = Redacted
	}
	return out
}

// RedactEvaluation replaces the system identity and every evidence value,
// which may quote people, vendors or internal document names.
func RedactEvaluation(e Evaluation) Evaluation {
	out := e
	out.SystemName = Redacted
	if out.SystemDescription != "" {
		out.SystemDescription = Redacted
	}
	out.Verdicts = make([]model.Verdict, len(e.Verdicts))
	for i, v := range e.Verdicts {
		if !v.EvidenceValue.IsNull() {
			v.EvidenceValue = profile.StringValue(Redacted)
		}
		out.Verdicts[i] = v
	}
	return out
}

// RedactClassification replaces the system identity.
func RedactClassification(c Classification) Classification {
	out := c
	out.SystemName = Redacted
	if out.SystemDescription != "" {
		out.SystemDescription = Redacted
	}
	return out
}
