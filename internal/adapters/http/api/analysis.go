// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bnnadi/confida-scoring/internal/app"
	"github.com/bnnadi/confida-scoring/internal/domain/rubric"
	"github.com/bnnadi/confida-scoring/internal/domain/score"
)

// AnalysisHandler handles answer analysis requests.
type AnalysisHandler struct {
	analyzer Analyzer
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(analyzer Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer}
}

// analysisResponse is the response schema for POST /v1/analysis.
type analysisResponse struct {
	AnalysisID     string                        `json:"analysis_id"`
	Analysis       score.MultiAgentAnalysis      `json:"analysis"`
	EnhancedRubric *rubric.EnhancedScoringRubric `json:"enhanced_rubric,omitempty"`
	ProcessingTime float64                       `json:"processing_time"`
	AgentsUsed     []string                      `json:"agents_used"`
}

// HandlePostAnalysis handles POST /v1/analysis requests.
func (h *AnalysisHandler) HandlePostAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_analysis"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	start := time.Now()
	appReq := app.Request{
		Response:       req.Response,
		Question:       req.Question,
		JobDescription: req.JobDescription,
		Role:           req.Role,
		Weights:        req.Weights,
	}

	resp := analysisResponse{
		AnalysisID: uuid.NewString(),
		AgentsUsed: []string{"content", "delivery", "technical"},
	}
	if req.IncludeRubric {
		resp.Analysis, resp.EnhancedRubric = h.analyzer.AnalyzeWithRubric(r.Context(), appReq)
	} else {
		resp.Analysis = h.analyzer.AnalyzeResponse(r.Context(), appReq)
	}
	resp.ProcessingTime = time.Since(start).Seconds()

	writeJSON(w, http.StatusOK, resp)
}
