package rating

import (
	"math"
	"sort"
	"strconv"

	"github.com/okian/edgefinder/internal/domain/model"
)

// EloParams tune the rating rebuild from the game log.
type EloParams struct {
	Base          float64
	K             float64
	HomeAdvantage float64
}

// DefaultEloParams returns base 1500, K 20 and a 60 point home edge.
func DefaultEloParams() EloParams {
	return EloParams{Base: 1500, K: 20, HomeAdvantage: 60}
}

type eloState struct {
	rating float64
	wins   int
	losses int
	games  int
}

// BuildElo replays closed games in scheduled order and returns one rating
// row per team, sorted by final rating descending. A home team that does
// not outscore the visitor is charged with the loss. Games whose final
// score does not parse are skipped.
func BuildElo(games []model.Game, p EloParams) []model.RatingRow {
	closed := make([]model.Game, 0, len(games))
	for _, g := range games {
		if g.Closed() && g.HomeName != "" && g.AwayName != "" {
			closed = append(closed, g)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool { return closed[i].Scheduled.Before(closed[j].Scheduled) })

	states := make(map[string]*eloState)
	order := make([]string, 0, 32)
	state := func(team string) *eloState {
		s, ok := states[team]
		if !ok {
			s = &eloState{rating: p.Base}
			states[team] = s
			order = append(order, team)
		}
		return s
	}

	for _, g := range closed {
		hs, hok := model.ParsePoints(g.HomeScore)
		as, aok := model.ParsePoints(g.AwayScore)
		if !hok || !aok {
			continue
		}
		home, away := state(g.HomeName), state(g.AwayName)
		expected := 1 / (1 + math.Pow(10, (away.rating-(home.rating+p.HomeAdvantage))/400))
		actual := 0.0
		if hs > as {
			actual = 1
			home.wins++
			away.losses++
		} else {
			home.losses++
			away.wins++
		}
		delta := p.K * (actual - expected)
		home.rating += delta
		away.rating -= delta
		home.games++
		away.games++
	}

	sort.SliceStable(order, func(i, j int) bool { return states[order[i]].rating > states[order[j]].rating })
	rows := make([]model.RatingRow, 0, len(order))
	for _, team := range order {
		s := states[team]
		rows = append(rows, model.RatingRow{
			Team:   team,
			Rating: strconv.FormatFloat(s.rating, 'f', 2, 64),
			Wins:   strconv.Itoa(s.wins),
			Losses: strconv.Itoa(s.losses),
			Games:  strconv.Itoa(s.games),
		})
	}
	return rows
}
