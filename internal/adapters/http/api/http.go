// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/edgefinder/internal/app"
	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/internal/domain/quarters"
	"github.com/okian/edgefinder/internal/domain/rating"
	"github.com/okian/edgefinder/internal/domain/types"
	"github.com/okian/edgefinder/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AnalysisDependencies
	ExportDependencies
	ListingDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	analysisHandler *AnalysisHandler
	exportHandler   *ExportHandler
	listingHandler  *ListingHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		analysisHandler: NewAnalysisHandler(deps, log),
		exportHandler:   NewExportHandler(deps, log),
		listingHandler:  NewListingHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/analysis/", MetricsMiddleware(s.analysisHandler.HandleGetAnalysis, "analysis"))
	mux.HandleFunc("/export", MetricsMiddleware(s.exportHandler.HandleGetExport, "export"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.listingHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/quarter-standings", MetricsMiddleware(s.listingHandler.HandleGetQuarterStandings, "quarter_standings"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.listingHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/games-today", MetricsMiddleware(s.listingHandler.HandleGetGamesToday, "games_today"))
	mux.HandleFunc("/games", MetricsMiddleware(s.listingHandler.HandleGetGames, "games"))
	mux.HandleFunc("/injuries-leaders", MetricsMiddleware(s.listingHandler.HandleGetLeagueReport, "injuries_leaders"))
}

// Read shapes re-exported for handler signatures.
type (
	Analysis        = types.Analysis
	ExportRow       = types.ExportRow
	RatingEntry     = rating.Entry
	QuarterStanding = quarters.TeamStanding
	StandingsRow    = types.StandingsRow
	ScheduledGame   = model.ScheduledGame
	GameLogRow      = types.GameLogRow
	LeagueReport    = types.LeagueReport
)

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

// writeFailure maps an upstream error to a status and logs server-side failures.
func writeFailure(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	}
	log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
}

// isNotFound allows the API to translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, service.ErrGameNotFound) || errors.Is(err, ErrNotFound)
}
