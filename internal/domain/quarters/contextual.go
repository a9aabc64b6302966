package quarters

import "github.com/okian/edgefinder/internal/domain/model"

// Estimate is a regressed per-quarter expectation for one team in one context.
type Estimate struct {
	ExpectedFor     float64 `json:"expected_for"`
	ExpectedAgainst float64 `json:"expected_against"`
	ExpectedDiff    float64 `json:"expected_diff"`
	GamesFor        int     `json:"games_count_for"`
	GamesAgainst    int     `json:"games_count_against"`
}

// ContextualPrognostics maps every bucket (q1..q4, ot) to an estimate.
type ContextualPrognostics map[Quarter]Estimate

// MatchupContextual carries the home team's home estimates and the away
// team's away estimates.
type MatchupContextual struct {
	Home ContextualPrognostics `json:"home_team"`
	Away ContextualPrognostics `json:"away_team"`
}

// Contextual computes context-split estimates over closed games. Only the
// home team's home games and the away team's road games are used, each
// regressed toward the league average of the same context with weight k.
func Contextual(games []model.Game, homeID, awayID string, k float64) MatchupContextual {
	league, teams := accumulate(games)
	return MatchupContextual{
		Home: contextual(league, teams[homeID], model.ContextHome, k),
		Away: contextual(league, teams[awayID], model.ContextAway, k),
	}
}

func contextual(league, team Aggregate, ctx model.Context, k float64) ContextualPrognostics {
	out := make(ContextualPrognostics, len(Buckets))
	for _, q := range Buckets {
		lc := league[q].Context(ctx)
		var leagueFor, leagueAgainst float64
		if lc.GamesPlayed > 0 {
			leagueFor = lc.PointsFor / float64(lc.GamesPlayed)
			leagueAgainst = lc.PointsAgainst / float64(lc.GamesPlayed)
		}
		var tc Cell
		if team != nil {
			tc = *team[q].Context(ctx)
		}
		ef := Regress(tc.PointsFor, tc.GamesPlayed, leagueFor, k)
		ea := Regress(tc.PointsAgainst, tc.GamesPlayed, leagueAgainst, k)
		out[q] = Estimate{
			ExpectedFor:     ef,
			ExpectedAgainst: ea,
			ExpectedDiff:    ef - ea,
			GamesFor:        tc.GamesPlayed,
			GamesAgainst:    tc.GamesPlayed,
		}
	}
	return out
}
