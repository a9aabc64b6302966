package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/edgefinder/pkg/logger"
)

// AnalysisDependencies defines the interface for matchup analysis.
type AnalysisDependencies interface {
	Analyze(ctx context.Context, gameID string) (Analysis, error)
}

// AnalysisHandler handles analysis requests.
type AnalysisHandler struct {
	deps AnalysisDependencies
	log  logger.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps AnalysisDependencies, log logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{deps: deps, log: log}
}

// HandleGetAnalysis handles GET /analysis/{game_id} requests.
func (h *AnalysisHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_analysis"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/analysis/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	analysis, err := h.deps.Analyze(r.Context(), id)
	if err != nil {
		writeFailure(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
