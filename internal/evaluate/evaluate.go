// Package evaluate turns a catalog and a system profile into per-control
// verdicts.
package evaluate

import (
	"log/slog"
	"sync"

	"ai-governance-controls/internal/catalog"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/profile"
	"ai-governance-controls/internal/remediation"
)

// Options narrow an evaluation.
type Options struct {
	// MinSeverity drops controls ranked below it. Empty keeps everything.
	MinSeverity string
	// FailedOnly drops passing verdicts from the result.
	FailedOnly bool
}

// Evaluator holds the immutable tables an evaluation needs. It is safe for
// concurrent use.
type Evaluator struct {
	guidance *remediation.Table
	weights  Weights
	logger   *slog.Logger

	asserts sync.Map // source -> *catalog.Assertion or error
}

// New builds an Evaluator. A nil guidance table attaches no remediation; nil
// weights fall back to DefaultWeights.
func New(guidance *remediation.Table, weights Weights) *Evaluator {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Evaluator{
		guidance: guidance,
		weights:  weights,
		logger:   slog.Default().With("component", "evaluate"),
	}
}

// Evaluate produces one verdict per surviving control, in catalog order.
// The result is never nil.
func (e *Evaluator) Evaluate(controls []model.Control, root profile.Value, opts Options) []model.Verdict {
	minLevel := 0
	if opts.MinSeverity != "" {
		minLevel = model.Severity(opts.MinSeverity).Level()
	}

	verdicts := make([]model.Verdict, 0, len(controls))
	for _, c := range controls {
		if model.Severity(c.Severity).Level() < minLevel {
			continue
		}

		path := c.EvidencePath()
		value := profile.Resolve(root, path)
		passed := e.decide(c, value)

		if opts.FailedOnly && passed {
			continue
		}

		steps, artifacts := e.guidance.Lookup(c.ID)
		nist := c.NISTMapping
		if nist == nil {
			nist = []string{}
		}
		verdicts = append(verdicts, model.Verdict{
			ID:                c.ID,
			Title:             c.Title,
			Requirement:       c.Requirement,
			Severity:          c.Severity,
			Weight:            e.weights.For(c.Severity),
			Passed:            passed,
			EvidencePath:      path,
			EvidenceValue:     value,
			NISTMapping:       append([]string{}, nist...),
			EUArticle:         c.EUArticle,
			RemediationSteps:  steps,
			RequiredArtifacts: artifacts,
		})
	}
	return verdicts
}

// decide applies the control's assertion when it has one, otherwise the
// truthiness rules. Assertions that fail to compile or evaluate fail closed.
func (e *Evaluator) decide(c model.Control, value profile.Value) bool {
	if c.Assert == "" {
		return value.Truthy()
	}
	a, err := e.assertion(c.Assert)
	if err != nil {
		e.logger.Debug("assertion rejected", "control", c.ID, "error", err)
		return false
	}
	ok, err := a.Eval(value.Interface())
	if err != nil {
		e.logger.Debug("assertion failed to evaluate", "control", c.ID, "error", err)
		return false
	}
	return ok
}

func (e *Evaluator) assertion(src string) (*catalog.Assertion, error) {
	if cached, ok := e.asserts.Load(src); ok {
		if err, isErr := cached.(error); isErr {
			return nil, err
		}
		return cached.(*catalog.Assertion), nil
	}
	a, err := catalog.CompileAssertion(src)
	if err != nil {
		e.asserts.Store(src, err)
		return nil, err
	}
	e.asserts.Store(src, a)
	return a, nil
}
