// Package app hosts the multi-agent analysis orchestrator: it fans one
// answer out to the three analysis strategies concurrently, combines their
// scores with configurable weights, and derives cross-agent guidance. Like
// the strategies it orchestrates, it never returns an error to callers.
package app

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/bnnadi/confida-scoring/internal/analysis"
	"github.com/bnnadi/confida-scoring/internal/domain/rubric"
	"github.com/bnnadi/confida-scoring/internal/domain/score"
	"github.com/bnnadi/confida-scoring/pkg/logger"
	"github.com/bnnadi/confida-scoring/pkg/metrics"
)

// Thresholds for deriving cross-agent guidance (0-10 scale).
const (
	recommendationThreshold = 7.0
	strengthThreshold       = 8.0
	improvementThreshold    = 6.0
	maxRecommendations      = 5
)

const combinedFallbackConfidence = 0.5

// Aggregate status values reported by AgentStatus.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Request is one answer to analyze.
type Request struct {
	Response       string
	Question       string
	JobDescription string
	Role           string

	// Weights overrides the service-level combination weights for this
	// request only. Nil uses the configured weights.
	Weights *score.ScoringWeights
}

// StatusReport aggregates the per-strategy health checks.
type StatusReport struct {
	ContentAgent   analysis.HealthStatus `json:"content_agent"`
	DeliveryAgent  analysis.HealthStatus `json:"delivery_agent"`
	TechnicalAgent analysis.HealthStatus `json:"technical_agent"`
	OverallStatus  string                `json:"overall_status"`
}

// Stats is a snapshot of service counters.
type Stats struct {
	AnalysesTotal  uint64  `json:"analyses_total"`
	FallbacksTotal uint64  `json:"fallbacks_total"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// Service orchestrates the three analysis strategies.
type Service struct {
	content   *analysis.Strategy
	delivery  *analysis.Strategy
	technical *analysis.Strategy

	weights score.ScoringWeights
	timeout time.Duration
	logger  logger.Logger

	mu             sync.Mutex
	analysesTotal  uint64
	fallbacksTotal uint64
	startedAt      time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWeights sets the default combination weights.
func WithWeights(w score.ScoringWeights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithTimeout bounds each analysis call; zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// New creates the orchestrator over the given capability.
func New(capability analysis.Capability, opts ...Option) *Service {
	s := &Service{
		content:   analysis.NewStrategy(analysis.ContentProfile(), capability),
		delivery:  analysis.NewStrategy(analysis.DeliveryProfile(), capability),
		technical: analysis.NewStrategy(analysis.TechnicalProfile(), capability),
		weights:   score.DefaultWeights(),
		logger:    logger.Get().Named("orchestrator"),
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeResponse runs all three strategies concurrently and combines their
// results. It never returns an error: strategy-level degradation is already
// absorbed below, and a blown deadline yields the combined fallback.
func (s *Service) AnalyzeResponse(ctx context.Context, req Request) score.MultiAgentAnalysis {
	aggregate, _ := s.analyze(ctx, req)
	return aggregate
}

// AnalyzeWithRubric runs the analysis and additionally builds the detailed
// scoring rubric, parsed from the capability payload when present and
// synthesized from the delivery metrics otherwise.
func (s *Service) AnalyzeWithRubric(ctx context.Context, req Request) (score.MultiAgentAnalysis, *rubric.EnhancedScoringRubric) {
	aggregate, results := s.analyze(ctx, req)
	return aggregate, s.buildRubric(aggregate, results)
}

// strategyResults holds the per-strategy outputs of one fan-out.
type strategyResults struct {
	content   score.StrategyResult
	delivery  score.StrategyResult
	technical score.StrategyResult
}

func (s *Service) analyze(ctx context.Context, req Request) (score.MultiAgentAnalysis, strategyResults) {
	start := time.Now()
	s.logger.Info(ctx, "starting multi-agent analysis",
		logger.String("role", req.Role),
		logger.Int("response_length", len(req.Response)),
	)

	weights := s.weights
	if req.Weights != nil {
		weights = *req.Weights
	}
	weights = weights.Normalized()

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	in := analysis.Input{
		Response:       req.Response,
		Question:       req.Question,
		JobDescription: req.JobDescription,
		Role:           req.Role,
	}

	var results strategyResults
	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			results.content = s.content.Analyze(runCtx, in)
		}()
		go func() {
			defer wg.Done()
			results.delivery = s.delivery.Analyze(runCtx, in)
		}()
		go func() {
			defer wg.Done()
			results.technical = s.technical.Analyze(runCtx, in)
		}()
		wg.Wait()
	}()

	select {
	case <-done:
	case <-runCtx.Done():
		s.logger.Warn(ctx, "analysis deadline exceeded; using combined fallback",
			logger.Error(runCtx.Err()),
		)
		<-done // strategies unwind quickly once the context is cancelled
		fallback := s.combinedFallback(req)
		s.record(start, fallback.OverallScore, true)
		return fallback, strategyResults{}
	}

	overall := round2(weights.Combine(results.content.Score, results.delivery.Score, results.technical.Score))

	aggregate := score.MultiAgentAnalysis{
		ContentAgent:        results.content.AgentScore(),
		DeliveryAgent:       results.delivery.AgentScore(),
		TechnicalAgent:      results.technical.AgentScore(),
		OverallScore:        overall,
		Recommendations:     deriveRecommendations(results),
		Strengths:           deriveStrengths(results),
		AreasForImprovement: deriveImprovements(results),
		AnalysisMetadata: map[string]any{
			"role":            req.Role,
			"question_type":   classifyQuestionType(req.Question),
			"response_length": len(req.Response),
			"weights_used":    weights,
		},
		CreatedAt: time.Now().UTC(),
	}

	s.record(start, overall, false)
	s.logger.Info(ctx, "multi-agent analysis completed",
		logger.Float64("overall_score", overall),
	)
	return aggregate, results
}

// combinedFallback is the whole-call fallback: one length-derived score
// shared across all three agent slots.
func (s *Service) combinedFallback(req Request) score.MultiAgentAnalysis {
	base := math.Min(10.0, math.Max(1.0, float64(len(req.Response))/50.0))

	agent := score.AgentScore{
		Score:      round2(base),
		Feedback:   "Basic analysis - detailed analysis unavailable",
		Confidence: combinedFallbackConfidence,
		Details:    map[string]any{"fallback": true},
	}

	return score.MultiAgentAnalysis{
		ContentAgent:        agent,
		DeliveryAgent:       agent,
		TechnicalAgent:      agent,
		OverallScore:        round2(base),
		Recommendations:     []string{"Detailed analysis temporarily unavailable. Please try again."},
		Strengths:           []string{"Response provided"},
		AreasForImprovement: []string{"Analysis system needs attention"},
		AnalysisMetadata: map[string]any{
			"role":     req.Role,
			"fallback": true,
			"error":    "multi-agent analysis failed",
		},
		CreatedAt: time.Now().UTC(),
	}
}

// buildRubric prefers a rubric embedded in any strategy payload; otherwise
// it synthesizes one from the delivery clarity/confidence metrics.
func (s *Service) buildRubric(aggregate score.MultiAgentAnalysis, results strategyResults) *rubric.EnhancedScoringRubric {
	for _, details := range []map[string]any{
		results.content.Details,
		results.delivery.Details,
		results.technical.Details,
	} {
		if r := rubric.Parse(details); r != nil {
			return r
		}
	}
	return rubric.FromLegacyScores(
		results.delivery.Metrics["clarity_score"],
		results.delivery.Metrics["confidence_score"],
		aggregate.DeliveryAgent.Feedback,
		aggregate.Recommendations,
	)
}

// deriveRecommendations collects recommendations from strategies scoring
// below the threshold, de-duplicated and capped.
func deriveRecommendations(results strategyResults) []string {
	var recs []string
	for _, r := range []score.StrategyResult{results.content, results.delivery, results.technical} {
		if r.Score < recommendationThreshold {
			recs = append(recs, r.Recommendations...)
		}
	}

	seen := make(map[string]struct{}, len(recs))
	out := make([]string, 0, maxRecommendations)
	for _, r := range recs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
		if len(out) == maxRecommendations {
			break
		}
	}
	return out
}

func deriveStrengths(results strategyResults) []string {
	strengths := make([]string, 0, 3)
	if results.content.Score >= strengthThreshold {
		strengths = append(strengths, "Strong content relevance and completeness")
	}
	if results.delivery.Score >= strengthThreshold {
		strengths = append(strengths, "Clear and confident communication")
	}
	if results.technical.Score >= strengthThreshold {
		strengths = append(strengths, "Excellent technical knowledge")
	}
	return strengths
}

func deriveImprovements(results strategyResults) []string {
	improvements := make([]string, 0, 3)
	if results.content.Score < improvementThreshold {
		improvements = append(improvements, "Content relevance and structure")
	}
	if results.delivery.Score < improvementThreshold {
		improvements = append(improvements, "Communication clarity and confidence")
	}
	if results.technical.Score < improvementThreshold {
		improvements = append(improvements, "Technical depth and accuracy")
	}
	return improvements
}

// classifyQuestionType buckets the question for analysis metadata.
func classifyQuestionType(question string) string {
	q := strings.ToLower(question)
	switch {
	case containsAny(q, "tell me about", "describe", "explain"):
		return "behavioral"
	case containsAny(q, "how would you", "design", "implement", "algorithm"):
		return "technical"
	case containsAny(q, "system", "architecture", "scale", "performance"):
		return "system_design"
	default:
		return "general"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// AgentStatus runs the per-strategy self-tests and aggregates them. All
// unhealthy means unhealthy; some unhealthy means degraded.
func (s *Service) AgentStatus(ctx context.Context) StatusReport {
	report := StatusReport{
		ContentAgent:   s.content.HealthCheck(ctx),
		DeliveryAgent:  s.delivery.HealthCheck(ctx),
		TechnicalAgent: s.technical.HealthCheck(ctx),
	}

	healthy := 0
	for _, st := range []analysis.HealthStatus{report.ContentAgent, report.DeliveryAgent, report.TechnicalAgent} {
		if st.Healthy {
			healthy++
		}
	}
	switch healthy {
	case 3:
		report.OverallStatus = StatusHealthy
	case 0:
		report.OverallStatus = StatusUnhealthy
	default:
		report.OverallStatus = StatusDegraded
	}
	return report
}

// GetStats returns a snapshot of the service counters.
func (s *Service) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		AnalysesTotal:  s.analysesTotal,
		FallbacksTotal: s.fallbacksTotal,
		UptimeSeconds:  time.Since(s.startedAt).Seconds(),
	}
}

func (s *Service) record(start time.Time, overall float64, fallback bool) {
	s.mu.Lock()
	s.analysesTotal++
	if fallback {
		s.fallbacksTotal++
	}
	s.mu.Unlock()

	metrics.RecordAnalysis()
	if fallback {
		metrics.RecordAnalysisFallback()
	}
	metrics.RecordAnalysisDuration(float64(time.Since(start).Milliseconds()))
	metrics.RecordOverallScore(overall)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
