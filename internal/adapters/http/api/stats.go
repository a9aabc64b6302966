package api

import (
	"net/http"
)

// StatsProvider reports the projection service's runtime counters.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves GET /stats. The payload is the provider's map as is;
// for the projection service that is started, workerCount, ratingsSource,
// regressionK, tiltCoefficient, ratingCache, analyses and exports, plus
// lastLoad (RFC3339) and lastError once a dataset load has happened or failed.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a stats handler. A nil provider serves an empty object.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := map[string]interface{}{}
	if h.provider != nil {
		if s := h.provider.GetStats(); s != nil {
			stats = s
		}
	}
	// counters move on every request
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, stats)
}
