package api

import (
	"context"
	"net/http"

	"github.com/okian/edgefinder/pkg/logger"
)

// ListingDependencies defines the read-only listings.
type ListingDependencies interface {
	Rankings(ctx context.Context) ([]RatingEntry, error)
	QuarterStandings(ctx context.Context) ([]QuarterStanding, error)
	Standings(ctx context.Context) ([]StandingsRow, error)
	GamesToday(ctx context.Context) ([]ScheduledGame, error)
	Games(ctx context.Context) ([]GameLogRow, error)
	LeagueReport(ctx context.Context) (LeagueReport, error)
}

// ListingHandler serves the listings.
type ListingHandler struct {
	deps ListingDependencies
	log  logger.Logger
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(deps ListingDependencies, log logger.Logger) *ListingHandler {
	return &ListingHandler{deps: deps, log: log}
}

// HandleGetRankings handles GET /rankings requests.
func (h *ListingHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.log, "api.get_rankings", h.deps.Rankings)
}

// HandleGetQuarterStandings handles GET /quarter-standings requests.
func (h *ListingHandler) HandleGetQuarterStandings(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.log, "api.get_quarter_standings", h.deps.QuarterStandings)
}

// HandleGetStandings handles GET /standings requests.
func (h *ListingHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.log, "api.get_standings", h.deps.Standings)
}

// HandleGetGamesToday handles GET /games-today requests.
func (h *ListingHandler) HandleGetGamesToday(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.log, "api.get_games_today", h.deps.GamesToday)
}

// HandleGetGames handles GET /games requests.
func (h *ListingHandler) HandleGetGames(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.log, "api.get_games", h.deps.Games)
}

// HandleGetLeagueReport handles GET /injuries-leaders requests.
func (h *ListingHandler) HandleGetLeagueReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_league_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rep, err := h.deps.LeagueReport(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func serveList[T any](w http.ResponseWriter, r *http.Request, log logger.Logger, op string, list func(context.Context) ([]T, error)) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	items, err := list(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, log, op, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}
