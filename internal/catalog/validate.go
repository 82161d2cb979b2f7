package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
)

var (
	requiredFields    = []string{"id", "title", "requirement", "evidence", "severity"}
	recommendedFields = []string{"nist_ai_rmf", "eu_ai_act_article"}
)

const unknownControl = "UNKNOWN"

// ValidateFile validates the catalog at path. The returned error is only
// for an unreadable file; document problems are reported in the result.
func ValidateFile(path string, strict bool) (model.ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return model.ValidationResult{}, err
	}
	return ValidateBytes(data, strict), nil
}

// ValidateBytes decodes a YAML catalog and validates it.
func ValidateBytes(data []byte, strict bool) model.ValidationResult {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return failed(fmt.Sprintf("Invalid YAML syntax: %v", err))
	}
	if doc == nil {
		return failed("No controls found in file")
	}
	if err := checkShape(doc); err != nil {
		return failed(fmt.Sprintf("Invalid catalog structure: %v", err))
	}

	root := profile.FromAny(doc)
	items := profile.Resolve(root, "controls").Items()
	if len(items) == 0 {
		return failed("No controls found in file")
	}
	controls := make([]map[string]any, 0, len(items))
	for _, it := range items {
		m, _ := it.Interface().(map[string]any)
		controls = append(controls, m)
	}
	return Validate(controls, strict)
}

// Validate checks decoded controls and collects every problem found.
// Duplicate-ID errors come first, then per-control errors in catalog order.
func Validate(controls []map[string]any, strict bool) model.ValidationResult {
	if len(controls) == 0 {
		return failed("No controls found in file")
	}

	res := model.ValidationResult{
		ControlsCount:        len(controls),
		Errors:               []model.Issue{},
		Warnings:             []model.Issue{},
		SeverityDistribution: map[string]int{},
	}

	seen := make(map[string]bool, len(controls))
	for _, c := range controls {
		id := text(c["id"])
		if seen[id] {
			res.Errors = append(res.Errors, issue(id, model.IssueError, "Duplicate control ID: %s", id))
		}
		seen[id] = true
	}

	for _, c := range controls {
		id := unknownControl
		if raw, ok := c["id"]; ok {
			id = text(raw)
		}
		for _, msg := range controlErrors(c) {
			res.Errors = append(res.Errors, model.Issue{ControlID: id, Message: msg, Type: model.IssueError})
		}
		for _, f := range recommendedFields {
			if _, ok := c[f]; !ok {
				res.Warnings = append(res.Warnings, issue(id, model.IssueWarning, "Missing recommended field: %s", f))
			}
		}
		res.SeverityDistribution[severityKey(c)]++
	}

	res.Valid = len(res.Errors) == 0 && (!strict || len(res.Warnings) == 0)
	return res
}

func controlErrors(c map[string]any) []string {
	var errs []string
	for _, f := range requiredFields {
		v, ok := c[f]
		switch {
		case !ok:
			errs = append(errs, "Missing required field: "+f)
		case !profile.FromAny(v).Bool():
			errs = append(errs, "Empty required field: "+f)
		}
	}

	if raw, ok := c["severity"]; ok && raw != nil {
		sev := strings.ToLower(text(raw))
		if sev != "" && !model.Severity(sev).Valid() {
			errs = append(errs, fmt.Sprintf("Invalid severity '%s'. Must be one of: %s", sev, severityList()))
		}
	}

	if raw, ok := c["evidence"]; ok && raw != nil {
		ev := text(raw)
		if ev != "" && !strings.HasPrefix(ev, model.EvidencePrefix) {
			errs = append(errs, fmt.Sprintf("Evidence path should start with '%s' Got: %s", model.EvidencePrefix, ev))
		}
	}

	if raw, ok := c["assert"]; ok && raw != nil {
		src, isString := raw.(string)
		switch {
		case !isString:
			errs = append(errs, "Invalid assert expression: must be a string")
		case strings.TrimSpace(src) != "":
			if _, err := CompileAssertion(src); err != nil {
				errs = append(errs, fmt.Sprintf("Invalid assert expression: %v", err))
			}
		}
	}
	return errs
}

func severityKey(c map[string]any) string {
	raw, ok := c["severity"]
	if !ok || raw == nil {
		return "unknown"
	}
	return text(raw)
}

func severityList() string {
	quoted := make([]string, len(model.Severities))
	for i, s := range model.Severities {
		quoted[i] = "'" + string(s) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return profile.FromAny(t).String()
	}
}

func issue(id string, typ model.IssueType, format string, args ...any) model.Issue {
	return model.Issue{ControlID: id, Message: fmt.Sprintf(format, args...), Type: typ}
}

func failed(msg string) model.ValidationResult {
	return model.ValidationResult{
		Error:    msg,
		Errors:   []model.Issue{},
		Warnings: []model.Issue{},
	}
}
