// Package analysis implements the three answer-analysis strategies
// (content, delivery, technical) on top of a pluggable text-analysis
// capability. A strategy never returns an error: capability failures
// degrade to deterministic heuristic results and unparseable responses
// degrade to structured defaults, both reflected only in lowered
// confidence and fallback markers.
package analysis

import (
	"context"
	"errors"
)

// Sentinel kinds for analysis errors.
var (
	ErrCapabilityUnavailable = errors.New("analysis capability unavailable")
)

// Query carries one analysis request to the external capability. Prompt is
// the fully rendered strategy prompt; the structured fields are provided
// for backends that build their own request shapes.
type Query struct {
	Prompt         string
	SystemPrompt   string
	JobDescription string
	Question       string
	Answer         string
	Role           string
}

// Response is what a capability returns: raw text that may embed a JSON
// object, or an already-parsed mapping. When Data is non-nil it takes
// precedence over Text.
type Response struct {
	Text string
	Data map[string]any
}

// Capability is the external text-analysis dependency. Implementations may
// call any LLM backend; they must be safe for concurrent use.
type Capability interface {
	Query(ctx context.Context, q Query) (Response, error)
}
