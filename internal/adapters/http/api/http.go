// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnnadi/confida-scoring/internal/app"
	"github.com/bnnadi/confida-scoring/internal/domain/rubric"
	"github.com/bnnadi/confida-scoring/internal/domain/score"
)

// Analyzer bundles the orchestrator operations the handlers depend on.
// Using an interface keeps the handler layer loosely coupled to the app
// package implementation.
type Analyzer interface {
	AnalyzeResponse(ctx context.Context, req app.Request) score.MultiAgentAnalysis
	AnalyzeWithRubric(ctx context.Context, req app.Request) (score.MultiAgentAnalysis, *rubric.EnhancedScoringRubric)
	AgentStatus(ctx context.Context) app.StatusReport
	GetStats() app.Stats
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	analysisHandler *AnalysisHandler
	statusHandler   *StatusHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(analyzer Analyzer) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(analyzer),
		analysisHandler: NewAnalysisHandler(analyzer),
		statusHandler:   NewStatusHandler(analyzer),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/analysis", MetricsMiddleware(s.analysisHandler.HandlePostAnalysis, "analysis"))
	mux.HandleFunc("/v1/agents/status", MetricsMiddleware(s.statusHandler.HandleAgentStatus, "agents_status"))
}

// analysisRequest mirrors the request schema for POST /v1/analysis.
type analysisRequest struct {
	Response       string                `json:"response"`
	Question       string                `json:"question"`
	JobDescription string                `json:"job_description"`
	Role           string                `json:"role"`
	Weights        *score.ScoringWeights `json:"weights,omitempty"`
	IncludeRubric  bool                  `json:"include_rubric,omitempty"`
}

func (a analysisRequest) validate() error {
	switch {
	case strings.TrimSpace(a.Response) == "":
		return errors.New("missing response")
	case strings.TrimSpace(a.Question) == "":
		return errors.New("missing question")
	}
	if a.Weights != nil {
		if a.Weights.Content < 0 || a.Weights.Delivery < 0 || a.Weights.Technical < 0 {
			return errors.New("weights must be non-negative")
		}
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// NewKind tags a sentinel error kind with the operation it occurred in.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags a sentinel kind and the underlying cause.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
