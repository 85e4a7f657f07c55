// Package score contains the multi-agent scoring domain model: per-agent
// scores, combination weights, and the aggregate analysis returned to
// callers. All agent scores live on the 0-10 scale; the rubric package owns
// the 100-point representation and the conversion boundary between them.
package score

import "time"

// Agent score bounds (0-10 scale).
const (
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// Confidence bounds.
const (
	ConfidenceMin = 0.0
	ConfidenceMax = 1.0
)

// AgentScore is the score and feedback from one analysis agent.
// Ephemeral: produced per analysis request, never persisted.
type AgentScore struct {
	Score      float64        `json:"score"`
	Feedback   string         `json:"feedback"`
	Confidence float64        `json:"confidence"`
	Details    map[string]any `json:"details"`
}

// StrategyResult is the full output of one analysis strategy, a superset of
// AgentScore carrying the strategy's recommendations and named sub-metrics.
type StrategyResult struct {
	Score           float64            `json:"score"`
	Feedback        string             `json:"feedback"`
	Confidence      float64            `json:"confidence"`
	Details         map[string]any     `json:"details"`
	Recommendations []string           `json:"recommendations"`
	Metrics         map[string]float64 `json:"metrics"`
}

// AgentScore projects the strategy result down to the aggregate's per-agent
// shape.
func (r StrategyResult) AgentScore() AgentScore {
	return AgentScore{
		Score:      r.Score,
		Feedback:   r.Feedback,
		Confidence: r.Confidence,
		Details:    r.Details,
	}
}

// MultiAgentAnalysis aggregates the three agent scores with the weighted
// overall score and derived guidance.
type MultiAgentAnalysis struct {
	ContentAgent        AgentScore     `json:"content_agent"`
	DeliveryAgent       AgentScore     `json:"delivery_agent"`
	TechnicalAgent      AgentScore     `json:"technical_agent"`
	OverallScore        float64        `json:"overall_score"`
	Recommendations     []string       `json:"recommendations"`
	Strengths           []string       `json:"strengths"`
	AreasForImprovement []string       `json:"areas_for_improvement"`
	AnalysisMetadata    map[string]any `json:"analysis_metadata"`
	CreatedAt           time.Time      `json:"created_at"`
}
