// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// StatusHandler handles agent status requests.
type StatusHandler struct {
	analyzer Analyzer
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(analyzer Analyzer) *StatusHandler {
	return &StatusHandler{analyzer: analyzer}
}

// HandleAgentStatus handles GET /v1/agents/status requests. Self-tests run
// on demand; the response is always 200 with the aggregate status inside.
func (h *StatusHandler) HandleAgentStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.analyzer.AgentStatus(r.Context()))
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	analyzer Analyzer
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(analyzer Analyzer) *StatsHandler {
	return &StatsHandler{analyzer: analyzer}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.analyzer.GetStats())
}
