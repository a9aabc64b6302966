// Package quarters estimates per-quarter scoring for a matchup by regressing
// each team's quarter averages toward the league average.
package quarters

import "github.com/okian/edgefinder/internal/domain/model"

// Quarter names a scoring bucket.
type Quarter string

const (
	Q1 Quarter = "q1"
	Q2 Quarter = "q2"
	Q3 Quarter = "q3"
	Q4 Quarter = "q4"
	OT Quarter = "ot"
)

// DefaultK is the number of league-average games blended into every estimate.
const DefaultK = 10.0

// Regulation lists the four regulation quarters.
var Regulation = []Quarter{Q1, Q2, Q3, Q4}

// Buckets lists the regulation quarters plus overtime.
var Buckets = []Quarter{Q1, Q2, Q3, Q4, OT}

// Cell accumulates points for and against over a number of games.
type Cell struct {
	GamesPlayed   int     `json:"games_played"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

func (c *Cell) add(pf, pa float64) {
	c.GamesPlayed++
	c.PointsFor += pf
	c.PointsAgainst += pa
}

// Split holds one bucket over all games and per context.
type Split struct {
	All  Cell `json:"all"`
	Home Cell `json:"home"`
	Away Cell `json:"away"`
}

// Context returns the cell for ctx.
func (s *Split) Context(ctx model.Context) *Cell {
	if ctx == model.ContextHome {
		return &s.Home
	}
	return &s.Away
}

func (s *Split) add(ctx model.Context, pf, pa float64) {
	s.All.add(pf, pa)
	s.Context(ctx).add(pf, pa)
}

// Aggregate maps every bucket to its split.
type Aggregate map[Quarter]*Split

func newAggregate() Aggregate {
	a := make(Aggregate, len(Buckets))
	for _, q := range Buckets {
		a[q] = &Split{}
	}
	return a
}

// Regress blends a team's sum over games with k games at the league
// average. A team without games gets exactly the league average.
func Regress(sum float64, games int, leagueAvg, k float64) float64 {
	if k <= 0 {
		k = DefaultK
	}
	return (sum + leagueAvg*k) / (float64(games) + k)
}

// bucketPoints returns the home and away points scored in bucket q. A
// regulation quarter counts only when both sides parse. Overtime sums every
// period where both sides parse and counts when at least one did.
func bucketPoints(g model.Game, q Quarter) (home, away float64, ok bool) {
	if q == OT {
		for i := 0; i < model.Periods; i++ {
			h, hok := model.ParsePoints(g.HomeOvertime[i])
			a, aok := model.ParsePoints(g.AwayOvertime[i])
			if hok && aok {
				home += h
				away += a
				ok = true
			}
		}
		return home, away, ok
	}
	i := quarterIndex(q)
	h, hok := model.ParsePoints(g.HomeQuarters[i])
	a, aok := model.ParsePoints(g.AwayQuarters[i])
	if !hok || !aok {
		return 0, 0, false
	}
	return h, a, true
}

func quarterIndex(q Quarter) int {
	switch q {
	case Q2:
		return 1
	case Q3:
		return 2
	case Q4:
		return 3
	}
	return 0
}

// accumulate walks the closed games once and returns the league aggregate
// (home/away cells from each side's perspective) and one aggregate per team.
func accumulate(games []model.Game) (Aggregate, map[string]Aggregate) {
	league := newAggregate()
	teams := make(map[string]Aggregate)
	team := func(id string) Aggregate {
		a, ok := teams[id]
		if !ok {
			a = newAggregate()
			teams[id] = a
		}
		return a
	}
	for _, g := range games {
		if !g.Closed() {
			continue
		}
		for _, q := range Buckets {
			h, a, ok := bucketPoints(g, q)
			if !ok {
				continue
			}
			league[q].add(model.ContextHome, h, a)
			league[q].add(model.ContextAway, a, h)
			if g.HomeID != "" {
				team(g.HomeID)[q].add(model.ContextHome, h, a)
			}
			if g.AwayID != "" {
				team(g.AwayID)[q].add(model.ContextAway, a, h)
			}
		}
	}
	return league, teams
}
