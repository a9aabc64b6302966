package quarters

import "github.com/okian/edgefinder/internal/domain/model"

// PooledEstimate is the regulation-quarter estimate of the pooled model.
type PooledEstimate struct {
	Quarter         int     `json:"quarter"`
	ExpectedFor     float64 `json:"expected_for"`
	ExpectedAgainst float64 `json:"expected_against"`
	ExpectedDiff    float64 `json:"expected_diff"`
	Games           int     `json:"games"`
}

// PooledPrognostics lists estimates for quarters 1 through 4.
type PooledPrognostics struct {
	ByQuarter []PooledEstimate `json:"by_quarter"`
}

// MatchupPooled carries both teams' pooled estimates.
type MatchupPooled struct {
	Home PooledPrognostics `json:"home_team"`
	Away PooledPrognostics `json:"away_team"`
}

type leagueQuarter struct {
	homeFor, homeAgainst float64
	awayFor, awayAgainst float64
}

// Pooled computes regulation-quarter estimates where the league baseline
// is shared by both contexts: the home side's expected-for equals the away
// side's expected-against and vice versa. Team points for and against are
// counted independently. Rows without a status count as closed. With no
// closed rows every estimate is zero.
func Pooled(games []model.Game, homeID, awayID string, k float64) MatchupPooled {
	closed := make([]model.Game, 0, len(games))
	for _, g := range games {
		if g.Status == "" || g.Closed() {
			closed = append(closed, g)
		}
	}
	if len(closed) == 0 {
		empty := PooledPrognostics{ByQuarter: make([]PooledEstimate, len(Regulation))}
		for i := range empty.ByQuarter {
			empty.ByQuarter[i].Quarter = i + 1
		}
		return MatchupPooled{Home: empty, Away: copyPooled(empty)}
	}

	league := make([]leagueQuarter, len(Regulation))
	for i := range Regulation {
		var hs, as float64
		n := 0
		for _, g := range closed {
			h, hok := model.ParseDecimal(g.HomeQuarters[i])
			a, aok := model.ParseDecimal(g.AwayQuarters[i])
			if !hok || !aok {
				continue
			}
			hs += h
			as += a
			n++
		}
		if n > 0 {
			league[i] = leagueQuarter{
				homeFor: hs / float64(n), homeAgainst: as / float64(n),
				awayFor: as / float64(n), awayAgainst: hs / float64(n),
			}
		}
	}

	return MatchupPooled{
		Home: pooled(closed, league, homeID, model.ContextHome, k),
		Away: pooled(closed, league, awayID, model.ContextAway, k),
	}
}

func pooled(games []model.Game, league []leagueQuarter, teamID string, ctx model.Context, k float64) PooledPrognostics {
	out := PooledPrognostics{ByQuarter: make([]PooledEstimate, 0, len(Regulation))}
	for i := range Regulation {
		var sumFor, sumAgainst float64
		var gamesFor, gamesAgainst int
		for _, g := range games {
			side, ok := g.Side(teamID)
			if !ok || side != ctx {
				continue
			}
			own, opp := g.HomeQuarters[i], g.AwayQuarters[i]
			if ctx == model.ContextAway {
				own, opp = opp, own
			}
			if v, ok := model.ParseDecimal(own); ok {
				sumFor += v
				gamesFor++
			}
			if v, ok := model.ParseDecimal(opp); ok {
				sumAgainst += v
				gamesAgainst++
			}
		}
		lf, la := league[i].homeFor, league[i].homeAgainst
		if ctx == model.ContextAway {
			lf, la = league[i].awayFor, league[i].awayAgainst
		}
		ef := Regress(sumFor, gamesFor, lf, k)
		ea := Regress(sumAgainst, gamesAgainst, la, k)
		out.ByQuarter = append(out.ByQuarter, PooledEstimate{
			Quarter:         i + 1,
			ExpectedFor:     ef,
			ExpectedAgainst: ea,
			ExpectedDiff:    ef - ea,
			Games:           max(gamesFor, gamesAgainst),
		})
	}
	return out
}

func copyPooled(p PooledPrognostics) PooledPrognostics {
	return PooledPrognostics{ByQuarter: append([]PooledEstimate(nil), p.ByQuarter...)}
}
