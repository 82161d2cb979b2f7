// Package risk places a system profile in an EU AI Act risk tier with a
// keyword heuristic and checks high-risk systems against the Article 9–15
// evidence checklist. It is a screening aid, not a legal determination.
package risk

import (
	"fmt"
	"strings"

	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
)

const minimalReason = "No high-risk or limited-risk indicators detected"

type Classifier struct {
	tables *Tables
}

// NewClassifier uses DefaultTables when t is nil.
func NewClassifier(t *Tables) *Classifier {
	if t == nil {
		t = DefaultTables()
	}
	return &Classifier{tables: t}
}

// Classify runs the tier cascade: unacceptable, high, limited, minimal.
// The first prohibited indicator found ends the search.
func (c *Classifier) Classify(root profile.Value) model.Classification {
	text := Blob(root)
	declared := strings.ToLower(profile.Field(root, "risk_tier", ""))

	for _, ind := range c.tables.Unacceptable {
		if strings.Contains(text, ind) {
			return model.Classification{
				Tier:         model.TierUnacceptable,
				Reasons:      []string{"Detected prohibited use indicator: " + ind},
				Obligations:  clone(c.tables.Obligations.Unacceptable),
				Matches:      []model.Match{{Category: "prohibited", Keyword: ind}},
				DeclaredTier: declared,
			}
		}
	}

	var (
		matches []model.Match
		reasons []string
	)
	for _, cat := range c.tables.Categories {
		hit := false
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				matches = append(matches, model.Match{Category: cat.Key, Keyword: kw})
				hit = true
			}
		}
		if hit {
			reasons = append(reasons, fmt.Sprintf("Matches Annex III category: %s", categoryName(cat)))
		}
	}
	if len(matches) > 0 {
		return model.Classification{
			Tier:         model.TierHigh,
			Reasons:      reasons,
			Obligations:  clone(c.tables.Obligations.High),
			Matches:      matches,
			DeclaredTier: declared,
		}
	}

	for _, ind := range c.tables.Limited {
		if strings.Contains(text, ind) {
			reasons = append(reasons, "Limited risk indicator: "+ind)
			matches = append(matches, model.Match{Category: "limited", Keyword: ind})
		}
	}
	if len(reasons) > 0 {
		return model.Classification{
			Tier:         model.TierLimited,
			Reasons:      reasons,
			Obligations:  clone(c.tables.Obligations.Limited),
			Matches:      matches,
			DeclaredTier: declared,
		}
	}

	return model.Classification{
		Tier:         model.TierMinimal,
		Reasons:      []string{minimalReason},
		Obligations:  clone(c.tables.Obligations.Minimal),
		DeclaredTier: declared,
	}
}

// Blob is the lowercased text the keyword search runs over: name,
// description and data inventory entries joined by single spaces.
func Blob(root profile.Value) string {
	name := profile.Field(root, "system_name", "")
	desc := profile.Field(root, "system_description", "")
	items := profile.Resolve(root, "data_inventory").Items()
	inv := make([]string, len(items))
	for i, it := range items {
		inv[i] = it.String()
	}
	return strings.ToLower(name + " " + desc + " " + strings.Join(inv, " "))
}

func categoryName(c Category) string {
	if c.Name == "" {
		return c.Key
	}
	return c.Name
}

func clone(s []string) []string {
	return append([]string{}, s...)
}
