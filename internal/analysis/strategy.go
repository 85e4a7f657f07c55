package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnnadi/confida-scoring/internal/domain/score"
	"github.com/bnnadi/confida-scoring/pkg/logger"
	"github.com/bnnadi/confida-scoring/pkg/metrics"
)

// Score bands used for feedback and recommendation selection (0-10 scale).
const (
	excellentScoreBand = 8.0
	goodScoreBand      = 6.0
)

// Fallback characteristics.
const (
	heuristicConfidence = 0.5
	maxRecommendations  = 5
	maxSuggestionRecs   = 3
)

// Input carries one answer to analyze with its interview context.
type Input struct {
	Response       string
	Question       string
	JobDescription string
	Role           string
}

// MetricWeight pairs a sub-metric key with its share of the strategy's
// composite score. Weights across a profile sum to 1.0.
type MetricWeight struct {
	Key    string
	Weight float64
}

// MetricRec is a recommendation emitted when a specific sub-metric scores
// below the good band.
type MetricRec struct {
	Key  string
	Text string
}

// FeedbackBands holds the score-banded opening sentence of a strategy's
// feedback: >=8 excellent, >=6 good, otherwise needs improvement.
type FeedbackBands struct {
	Excellent string
	Good      string
	Poor      string
}

// Heuristic is the deterministic result substituted when the capability
// call fails outright.
type Heuristic struct {
	Score   float64
	Metrics map[string]float64
	Details map[string]any
}

// Profile is the per-strategy configuration. The three strategies are
// structurally identical and differ only in this data, so a single
// Strategy type parameterized by a Profile replaces any inheritance
// hierarchy.
type Profile struct {
	// Name is the short strategy identifier: content, delivery, technical.
	Name string

	// Label is the human-readable form used in fallback feedback text.
	Label string

	SystemPrompt  string
	MetricWeights []MetricWeight
	Keys          ReportKeys

	// DefaultStrength seeds the structured-defaults report.
	DefaultStrength string

	FeedbackBands  FeedbackBands
	StrengthsLabel string
	StrengthsLimit int

	// LowRecs apply below the good band, MidRecs between good and excellent.
	LowRecs []string
	MidRecs []string

	MetricRecs []MetricRec

	// ExtraFeedback appends profile-specific sentences (tone notes,
	// missing/incorrect concepts) after the common segments.
	ExtraFeedback func(Report) []string

	BuildPrompt func(Input) string
	Heuristic   func(Input) Heuristic
}

// Option applies a configuration option to the Strategy.
type Option func(*Strategy)

// WithLogger sets a custom logger for the strategy.
func WithLogger(l logger.Logger) Option {
	return func(s *Strategy) {
		if l != nil {
			s.logger = l
		}
	}
}

// Strategy runs one analysis approach against the capability. Stateless
// and safe for concurrent use; construct once and reuse across calls.
type Strategy struct {
	profile    Profile
	capability Capability
	logger     logger.Logger
}

// NewStrategy creates a strategy from its profile and capability.
func NewStrategy(p Profile, c Capability, opts ...Option) *Strategy {
	s := &Strategy{
		profile:    p,
		capability: c,
		logger:     logger.Get().Named(p.Name),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the short strategy identifier.
func (s *Strategy) Name() string { return s.profile.Name }

// Analyze scores one answer. It never returns an error: a failed
// capability call degrades to the profile's heuristic fallback and an
// unparseable response degrades to structured defaults.
func (s *Strategy) Analyze(ctx context.Context, in Input) score.StrategyResult {
	start := time.Now()
	defer func() {
		metrics.RecordStrategyLatency(s.profile.Name, float64(time.Since(start).Milliseconds()))
	}()

	resp, err := s.capability.Query(ctx, Query{
		Prompt:         s.profile.BuildPrompt(in),
		SystemPrompt:   s.profile.SystemPrompt,
		JobDescription: in.JobDescription,
		Question:       in.Question,
		Answer:         in.Response,
		Role:           in.Role,
	})
	if err != nil {
		s.logger.Warn(ctx, "capability call failed; using heuristic fallback",
			logger.String("strategy", s.profile.Name),
			logger.Error(err),
		)
		metrics.RecordStrategyFallback(s.profile.Name, "call")
		return s.fallbackResult(in)
	}

	report := s.profile.decodeReport(resp)
	if !report.Parsed {
		s.logger.Warn(ctx, "capability response unparseable; using structured defaults",
			logger.String("strategy", s.profile.Name),
		)
		metrics.RecordStrategyFallback(s.profile.Name, "parse")
	}

	composite := compositeScore(report.Metrics, s.profile.MetricWeights)

	return score.StrategyResult{
		Score:           composite,
		Feedback:        s.profile.composeFeedback(report, composite),
		Confidence:      clampConfidence(report.Confidence),
		Details:         s.details(report),
		Recommendations: s.profile.composeRecommendations(report, composite),
		Metrics:         metricsSnapshot(report, s.profile.MetricWeights),
	}
}

// fallbackResult is the second-level fallback: a deterministic heuristic
// derived from the answer text alone.
func (s *Strategy) fallbackResult(in Input) score.StrategyResult {
	h := s.profile.Heuristic(in)
	details := map[string]any{
		"fallback":        true,
		"response_length": len(in.Response),
	}
	for k, v := range h.Details {
		details[k] = v
	}
	return score.StrategyResult{
		Score:      round2(h.Score),
		Feedback:   fmt.Sprintf("Basic %s analysis - detailed analysis temporarily unavailable", s.profile.Label),
		Confidence: heuristicConfidence,
		Details:    details,
		Recommendations: []string{
			fmt.Sprintf("Detailed %s analysis temporarily unavailable", s.profile.Label),
		},
		Metrics: h.Metrics,
	}
}

// HealthStatus reports one strategy's self-test outcome.
type HealthStatus struct {
	Agent      string  `json:"agent_name"`
	Healthy    bool    `json:"healthy"`
	Score      float64 `json:"test_score,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Err        string  `json:"error,omitempty"`
}

// HealthCheck runs the strategy against fixed canned inputs. Analyze
// cannot fail, so the strategy is reported unhealthy when the self-test
// had to use the capability-failure fallback.
func (s *Strategy) HealthCheck(ctx context.Context) HealthStatus {
	result := s.Analyze(ctx, Input{
		Response:       "This is a test response",
		Question:       "Test question",
		JobDescription: "Test job description",
		Role:           "test",
	})
	if fb, ok := result.Details["fallback"].(bool); ok && fb {
		metrics.UpdateAgentHealth(s.profile.Name, false)
		return HealthStatus{
			Agent:   s.profile.Name,
			Healthy: false,
			Err:     ErrCapabilityUnavailable.Error(),
		}
	}
	metrics.UpdateAgentHealth(s.profile.Name, true)
	return HealthStatus{
		Agent:      s.profile.Name,
		Healthy:    true,
		Score:      result.Score,
		Confidence: result.Confidence,
	}
}

// compositeScore computes the weighted average of the present sub-metrics.
// Missing metrics drop out of both the numerator and the weight
// denominator; with no metrics at all the neutral default applies.
func compositeScore(metricValues map[string]float64, weights []MetricWeight) float64 {
	totalScore := 0.0
	totalWeight := 0.0
	for _, mw := range weights {
		if v, ok := metricValues[mw.Key]; ok {
			totalScore += v * mw.Weight
			totalWeight += mw.Weight
		}
	}
	if totalWeight <= 0 {
		return defaultMetricScore
	}
	return round2(totalScore / totalWeight)
}

// composeFeedback builds the human-readable feedback: the banded opener,
// then strengths, weaknesses, and profile-specific extras.
func (p Profile) composeFeedback(r Report, composite float64) string {
	parts := []string{p.bandText(composite)}
	if len(r.Strengths) > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", p.StrengthsLabel, strings.Join(firstN(r.Strengths, p.StrengthsLimit), ", ")))
	}
	if len(r.Weaknesses) > 0 {
		parts = append(parts, fmt.Sprintf("Areas to improve: %s", strings.Join(firstN(r.Weaknesses, 2), ", ")))
	}
	if p.ExtraFeedback != nil {
		parts = append(parts, p.ExtraFeedback(r)...)
	}
	return strings.Join(parts, " ")
}

func (p Profile) bandText(composite float64) string {
	switch {
	case composite >= excellentScoreBand:
		return p.FeedbackBands.Excellent
	case composite >= goodScoreBand:
		return p.FeedbackBands.Good
	default:
		return p.FeedbackBands.Poor
	}
}

// composeRecommendations orders capability suggestions first, then the
// score-banded canned items, then sub-metric-specific ones, de-duplicated
// and capped.
func (p Profile) composeRecommendations(r Report, composite float64) []string {
	recs := make([]string, 0, maxRecommendations)
	recs = append(recs, firstN(r.Suggestions, maxSuggestionRecs)...)

	switch {
	case composite < goodScoreBand:
		recs = append(recs, p.LowRecs...)
	case composite < excellentScoreBand:
		recs = append(recs, p.MidRecs...)
	}

	for _, mr := range p.MetricRecs {
		if v, ok := r.Metrics[mr.Key]; ok && v < goodScoreBand {
			recs = append(recs, mr.Text)
		}
	}

	return dedupeCap(recs, maxRecommendations)
}

// details exposes the decoded report plus fallback markers to callers.
func (s *Strategy) details(r Report) map[string]any {
	details := make(map[string]any, len(r.Raw)+1)
	for k, v := range r.Raw {
		details[k] = v
	}
	if !r.Parsed {
		details["parse_fallback"] = true
	}
	return details
}

// metricsSnapshot fixes the strategy's named sub-metrics, zero-filling
// the ones the response did not include.
func metricsSnapshot(r Report, weights []MetricWeight) map[string]float64 {
	out := make(map[string]float64, len(weights))
	for _, mw := range weights {
		out[mw.Key] = r.Metrics[mw.Key]
	}
	return out
}

func clampConfidence(v float64) float64 {
	return math.Max(score.ConfidenceMin, math.Min(score.ConfidenceMax, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// dedupeCap removes duplicates keeping first occurrence, capped at n.
func dedupeCap(s []string, n int) []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, n)
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}
