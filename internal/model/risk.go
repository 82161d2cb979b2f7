package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Tier string

const (
	TierUnacceptable Tier = "unacceptable"
	TierHigh         Tier = "high"
	TierLimited      Tier = "limited"
	TierMinimal      Tier = "minimal"
)

// Rank orders tiers from minimal (0) to unacceptable (3); unknown is -1.
func (t Tier) Rank() int {
	switch Tier(strings.ToLower(string(t))) {
	case TierMinimal:
		return 0
	case TierLimited:
		return 1
	case TierHigh:
		return 2
	case TierUnacceptable:
		return 3
	default:
		return -1
	}
}

// Match records one keyword hit in the classification blob.
type Match struct {
	Category string `json:"category"`
	Keyword  string `json:"keyword"`
}

type Classification struct {
	Tier        Tier     `json:"risk_tier"`
	Reasons     []string `json:"reasons"`
	Obligations []string `json:"obligations"`
	Matches     []Match  `json:"matches,omitempty"`
	// DeclaredTier is the profile's own risk_tier claim. Informational only.
	DeclaredTier string `json:"declared_tier,omitempty"`
}

// ComplianceCheck is one Article-level check of the high-risk checklist.
type ComplianceCheck struct {
	Name   string
	Label  string
	Passed bool
}

// ComplianceChecks keeps checklist order; it marshals as a JSON object
// with keys in that order.
type ComplianceChecks []ComplianceCheck

func (cs ComplianceChecks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if c.Passed {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (cs ComplianceChecks) Map() map[string]bool {
	m := make(map[string]bool, len(cs))
	for _, c := range cs {
		m[c.Name] = c.Passed
	}
	return m
}

// Gaps returns the checks that failed, in order.
func (cs ComplianceChecks) Gaps() []ComplianceCheck {
	var out []ComplianceCheck
	for _, c := range cs {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

type ComplianceResult struct {
	Checks         ComplianceChecks `json:"checks"`
	Passed         int              `json:"passed"`
	Total          int              `json:"total"`
	ComplianceRate float64          `json:"compliance_rate"`
}
