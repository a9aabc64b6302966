// Package types contains common types used across the application
package types

import (
	"strconv"
	"time"

	"github.com/okian/edgefinder/internal/domain/form"
	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/internal/domain/quarters"
	"github.com/okian/edgefinder/internal/domain/totals"
)

// Game describes the matchup being analyzed.
type Game struct {
	ID        string        `json:"id"`
	Title     string        `json:"title,omitempty"`
	Scheduled string        `json:"scheduled"`
	Status    string        `json:"status"`
	Venue     model.Venue   `json:"venue"`
	Home      model.TeamRef `json:"home"`
	Away      model.TeamRef `json:"away"`
	HomeScore string        `json:"home_score"`
	AwayScore string        `json:"away_score"`
}

// SplitRecord is a win/loss split.
type SplitRecord struct {
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	WinPct float64 `json:"win_pct"`
}

// OverallStanding is a team's season line plus its league-wide rank.
type OverallStanding struct {
	Wins                  int     `json:"wins"`
	Losses                int     `json:"losses"`
	WinPct                float64 `json:"win_pct"`
	ConferenceGamesBehind float64 `json:"conference_games_behind"`
	ConferenceRank        int     `json:"conference_rank"`
	OverallRank           int     `json:"overall_rank"`
	PointsFor             float64 `json:"points_for"`
	PointsAgainst         float64 `json:"points_against"`
}

// Standings is the standings snapshot of one team.
type Standings struct {
	Overall OverallStanding `json:"overall"`
	Home    SplitRecord     `json:"home"`
	Away    SplitRecord     `json:"away"`
}

// TeamAnalysis is everything known about one side of the matchup.
// Rating fields are nil when the team could not be matched.
type TeamAnalysis struct {
	ID             string                         `json:"id"`
	Name           string                         `json:"name"`
	Alias          string                         `json:"alias"`
	Standings      *Standings                     `json:"standings"`
	RatingRank     *int                           `json:"rating_rank"`
	Rating         *float64                       `json:"rating"`
	Form           form.Summary                   `json:"form"`
	Injuries       []model.InjuredPlayer          `json:"injuries"`
	Leaders        []model.Leader                 `json:"leaders"`
	Prognostics    quarters.ContextualPrognostics `json:"prognostics"`
	ProPrognostics quarters.PooledPrognostics     `json:"pro_prognostics"`
}

// Analysis is the combined per-matchup record.
type Analysis struct {
	Game             Game              `json:"game"`
	HomeTeam         TeamAnalysis      `json:"home_team"`
	AwayTeam         TeamAnalysis      `json:"away_team"`
	TotalsProjection totals.Projection `json:"totals_projection"`
}

// ExportRow is the one-line summary of a scheduled game.
type ExportRow struct {
	GameID         string   `json:"game_id"`
	Title          string   `json:"title"`
	Scheduled      string   `json:"scheduled"`
	HomeName       string   `json:"home_name"`
	HomeAlias      string   `json:"home_alias"`
	AwayName       string   `json:"away_name"`
	AwayAlias      string   `json:"away_alias"`
	HomeRatingRank *int     `json:"home_elo_rank"`
	AwayRatingRank *int     `json:"away_elo_rank"`
	HomeRating     *float64 `json:"home_elo_rating"`
	AwayRating     *float64 `json:"away_elo_rating"`
	ProjHome       float64  `json:"proj_home"`
	ProjAway       float64  `json:"proj_away"`
	ProjTotal      float64  `json:"proj_total"`
	ProjMargin     float64  `json:"proj_margin"`
	BaselineTotal  float64  `json:"baseline_total"`
	HomeLast10W    int      `json:"home_last10_w"`
	HomeLast10L    int      `json:"home_last10_l"`
	AwayLast10W    int      `json:"away_last10_w"`
	AwayLast10L    int      `json:"away_last10_l"`
	HomeLast5CtxW  int      `json:"home_last5_ctx_w"`
	HomeLast5CtxL  int      `json:"home_last5_ctx_l"`
	AwayLast5CtxW  int      `json:"away_last5_ctx_w"`
	AwayLast5CtxL  int      `json:"away_last5_ctx_l"`
	HomeLast5DaysW int      `json:"home_last5_days_w"`
	HomeLast5DaysL int      `json:"home_last5_days_l"`
	AwayLast5DaysW int      `json:"away_last5_days_w"`
	AwayLast5DaysL int      `json:"away_last5_days_l"`
}

// ExportColumns is the CSV header matching ExportRow.Record.
var ExportColumns = []string{
	"game_id", "title", "scheduled", "home_name", "home_alias", "away_name", "away_alias",
	"home_elo_rank", "away_elo_rank", "home_elo_rating", "away_elo_rating",
	"proj_home", "proj_away", "proj_total", "proj_margin", "baseline_total",
	"home_last10_w", "home_last10_l", "away_last10_w", "away_last10_l",
	"home_last5_ctx_w", "home_last5_ctx_l", "away_last5_ctx_w", "away_last5_ctx_l",
	"home_last5_days_w", "home_last5_days_l", "away_last5_days_w", "away_last5_days_l",
}

// StandingsRow is a standings listing entry with its league-wide rank.
type StandingsRow struct {
	model.StandingsTeam
	OverallRank int `json:"overall_rank"`
}

// GameLogRow is one entry of the raw game log listing.
type GameLogRow struct {
	GameID       string                `json:"game_id"`
	Status       string                `json:"status"`
	Scheduled    string                `json:"scheduled"`
	HomeID       string                `json:"home_id"`
	HomeName     string                `json:"home_name"`
	HomeAlias    string                `json:"home_alias"`
	AwayID       string                `json:"away_id"`
	AwayName     string                `json:"away_name"`
	AwayAlias    string                `json:"away_alias"`
	HomeScore    string                `json:"home_score"`
	AwayScore    string                `json:"away_score"`
	HomeQuarters [model.Periods]string `json:"home_quarters"`
	AwayQuarters [model.Periods]string `json:"away_quarters"`
	HomeOvertime [model.Periods]string `json:"home_overtime"`
	AwayOvertime [model.Periods]string `json:"away_overtime"`
}

// NewGameLogRow renders g with its raw score text. An unparsed scheduled
// time renders empty.
func NewGameLogRow(g model.Game) GameLogRow {
	row := GameLogRow{
		GameID:       g.ID,
		Status:       g.Status,
		HomeID:       g.HomeID,
		HomeName:     g.HomeName,
		HomeAlias:    g.HomeAlias,
		AwayID:       g.AwayID,
		AwayName:     g.AwayName,
		AwayAlias:    g.AwayAlias,
		HomeScore:    g.HomeScore,
		AwayScore:    g.AwayScore,
		HomeQuarters: g.HomeQuarters,
		AwayQuarters: g.AwayQuarters,
		HomeOvertime: g.HomeOvertime,
		AwayOvertime: g.AwayOvertime,
	}
	if !g.Scheduled.IsZero() {
		row.Scheduled = g.Scheduled.UTC().Format(time.RFC3339)
	}
	return row
}

// LeagueLeaders groups the statistical leaders by category.
type LeagueLeaders struct {
	Points        []model.Leader `json:"points"`
	Assists       []model.Leader `json:"assists"`
	Rebounds      []model.Leader `json:"rebounds"`
	ThreePointers []model.Leader `json:"three_pointers"`
}

// LeagueReport is the league-wide injury report and leader board.
type LeagueReport struct {
	Injuries []model.TeamInjuries `json:"injuries"`
	Leaders  LeagueLeaders        `json:"leaders"`
}

// NewLeagueReport groups leaders by category in feed order. Every list is
// non-nil so empty feeds encode as [].
func NewLeagueReport(injuries []model.TeamInjuries, leaders []model.Leader) LeagueReport {
	rep := LeagueReport{
		Injuries: make([]model.TeamInjuries, 0, len(injuries)),
		Leaders: LeagueLeaders{
			Points:        []model.Leader{},
			Assists:       []model.Leader{},
			Rebounds:      []model.Leader{},
			ThreePointers: []model.Leader{},
		},
	}
	for _, ti := range injuries {
		if ti.Players == nil {
			ti.Players = []model.InjuredPlayer{}
		}
		rep.Injuries = append(rep.Injuries, ti)
	}
	for _, l := range leaders {
		switch l.Category {
		case "points":
			rep.Leaders.Points = append(rep.Leaders.Points, l)
		case "assists":
			rep.Leaders.Assists = append(rep.Leaders.Assists, l)
		case "rebounds":
			rep.Leaders.Rebounds = append(rep.Leaders.Rebounds, l)
		case "three_points_made":
			rep.Leaders.ThreePointers = append(rep.Leaders.ThreePointers, l)
		}
	}
	return rep
}

// Record renders the row in ExportColumns order. Unknown ratings render empty.
func (r ExportRow) Record() []string {
	return []string{
		r.GameID, r.Title, r.Scheduled, r.HomeName, r.HomeAlias, r.AwayName, r.AwayAlias,
		optInt(r.HomeRatingRank), optInt(r.AwayRatingRank), optFloat(r.HomeRating), optFloat(r.AwayRating),
		num(r.ProjHome), num(r.ProjAway), num(r.ProjTotal), num(r.ProjMargin), num(r.BaselineTotal),
		strconv.Itoa(r.HomeLast10W), strconv.Itoa(r.HomeLast10L), strconv.Itoa(r.AwayLast10W), strconv.Itoa(r.AwayLast10L),
		strconv.Itoa(r.HomeLast5CtxW), strconv.Itoa(r.HomeLast5CtxL), strconv.Itoa(r.AwayLast5CtxW), strconv.Itoa(r.AwayLast5CtxL),
		strconv.Itoa(r.HomeLast5DaysW), strconv.Itoa(r.HomeLast5DaysL), strconv.Itoa(r.AwayLast5DaysW), strconv.Itoa(r.AwayLast5DaysL),
	}
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return num(*v)
}
