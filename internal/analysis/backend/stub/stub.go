// Package stub provides a deterministic in-process capability for
// development and tests. No network, no credentials, stable output for a
// given answer.
package stub

import (
	"context"

	"github.com/bnnadi/confida-scoring/internal/analysis"
)

// Answer-length thresholds for the canned score bands.
const (
	shortAnswerLen    = 80
	detailedAnswerLen = 400
)

// Capability scores answers with a fixed rule based only on answer length.
// The returned mapping carries the metric keys of every strategy; each
// strategy reads its own subset.
type Capability struct{}

// New creates the stub capability.
func New() *Capability { return &Capability{} }

// Query returns a canned structured analysis. It never fails.
func (c *Capability) Query(_ context.Context, q analysis.Query) (analysis.Response, error) {
	base := 7.0
	switch {
	case len(q.Answer) < shortAnswerLen:
		base = 5.0
	case len(q.Answer) > detailedAnswerLen:
		base = 8.0
	}

	data := map[string]any{
		"confidence": 0.7,

		// content
		"relevance_score":    base,
		"completeness_score": base,
		"keyword_coverage":   base,
		"example_quality":    base,

		// delivery (structure_score is shared with content)
		"clarity_score":           base,
		"confidence_score":        base,
		"structure_score":         base,
		"conciseness_score":       base,
		"professional_tone_score": base,
		"tone_analysis":           "professional",

		// technical
		"accuracy_score":        base,
		"depth_score":           base,
		"terminology_score":     base,
		"problem_solving_score": base,

		"strengths":                []any{"Answer addresses the question"},
		"weaknesses":               []any{},
		"communication_strengths":  []any{"Readable response"},
		"communication_weaknesses": []any{},
		"technical_strengths":      []any{"Reasonable approach"},
		"technical_weaknesses":     []any{},
		"missing_elements":         []any{},
		"missing_concepts":         []any{},
		"incorrect_concepts":       []any{},
		"improvement_suggestions":  []any{"Add a concrete example from past work"},
	}

	return analysis.Response{Data: data}, nil
}
