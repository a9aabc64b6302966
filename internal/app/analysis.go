package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/internal/domain/quarters"
	"github.com/okian/edgefinder/internal/domain/rating"
	"github.com/okian/edgefinder/internal/domain/totals"
	"github.com/okian/edgefinder/internal/domain/types"
	"github.com/okian/edgefinder/pkg/logger"
	"github.com/okian/edgefinder/pkg/metrics"
)

// statusUpcoming is reported for scheduled games that carry no status.
const statusUpcoming = "upcoming"

var unknownVenue = model.Venue{Name: "N/A", City: "N/A", State: "N/A"}

// matchupInputs holds everything derived once per snapshot and shared by
// every matchup computed from it.
type matchupInputs struct {
	snap      *model.Snapshot
	table     *rating.Table
	teams     map[string]model.StandingsTeam
	ranks     map[string]int
	leagueAvg float64
	now       time.Time
}

func (s *Service) inputs(ctx context.Context, snap *model.Snapshot) *matchupInputs {
	teams := make(map[string]model.StandingsTeam, len(snap.Standings))
	for _, t := range snap.Standings {
		if _, ok := teams[t.ID]; !ok {
			teams[t.ID] = t
		}
	}
	return &matchupInputs{
		snap:      snap,
		table:     s.ratingTable(ctx, snap),
		teams:     teams,
		ranks:     overallRanks(snap.Standings),
		leagueAvg: totals.LeagueAverage(snap.Standings),
		now:       s.now(),
	}
}

// lookupRating looks a team up in the rating table. Both results are nil when
// the team cannot be matched.
func (s *Service) lookupRating(ctx context.Context, in *matchupInputs, side, name, alias string) (*int, *float64) {
	e, ok := in.table.Lookup(name, alias)
	if !ok {
		metrics.RecordUnresolvedRating(side)
		s.logger.Debug(ctx, "team not found in rating table",
			logger.String("side", side),
			logger.String("name", name),
			logger.String("alias", alias),
		)
		return nil, nil
	}
	rank, value := e.Rank, e.Rating
	return &rank, &value
}

func (s *Service) projection(in *matchupInputs, homeID, awayID string, homeRating, awayRating *float64) totals.Projection {
	return totals.Project(
		in.teams[homeID].Aggregate(),
		in.teams[awayID].Aggregate(),
		in.leagueAvg,
		homeRating, awayRating,
		s.tiltK,
	)
}

// Analyze builds the full analysis of one game. The game may come from the
// daily schedule, the game log or both; the schedule wins for identity,
// time and venue while the log wins for status and scores.
func (s *Service) Analyze(ctx context.Context, gameID string) (types.Analysis, error) {
	const op = "service.Analyze"
	start := time.Now()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.Analysis{}, fmt.Errorf("%s: %w", op, err)
	}

	game, ok := mergeGame(gameID, findScheduled(snap.Schedule, gameID), findLogged(snap.Games, gameID))
	if !ok {
		return types.Analysis{}, fmt.Errorf("%s: %s: %w", op, gameID, ErrGameNotFound)
	}

	in := s.inputs(ctx, snap)
	homeRank, homeRating := s.lookupRating(ctx, in, "home", game.Home.Name, game.Home.Alias)
	awayRank, awayRating := s.lookupRating(ctx, in, "away", game.Away.Name, game.Away.Alias)

	contextual := quarters.Contextual(snap.Games, game.Home.ID, game.Away.ID, s.regressionK)
	pooled := quarters.Pooled(snap.Games, game.Home.ID, game.Away.ID, s.regressionK)

	home := s.team(in, game.Home, model.ContextHome)
	home.RatingRank, home.Rating = homeRank, homeRating
	home.Prognostics, home.ProPrognostics = contextual.Home, pooled.Home

	away := s.team(in, game.Away, model.ContextAway)
	away.RatingRank, away.Rating = awayRank, awayRating
	away.Prognostics, away.ProPrognostics = contextual.Away, pooled.Away

	out := types.Analysis{
		Game:             game,
		HomeTeam:         home,
		AwayTeam:         away,
		TotalsProjection: s.projection(in, game.Home.ID, game.Away.ID, homeRating, awayRating),
	}

	s.analyses.Add(1)
	metrics.RecordAnalysis(float64(time.Since(start).Milliseconds()))
	s.logger.Debug(ctx, "analysis computed",
		logger.String("gameID", gameID),
		logger.Duration("took", time.Since(start)),
	)
	return out, nil
}

// team fills the parts of a team analysis that depend on the team only.
func (s *Service) team(in *matchupInputs, ref model.TeamRef, side model.Context) types.TeamAnalysis {
	ta := types.TeamAnalysis{
		ID:       ref.ID,
		Name:     ref.Name,
		Alias:    ref.Alias,
		Form:     s.summarizer.Summarize(in.snap.Games, ref.ID, side, in.now),
		Injuries: []model.InjuredPlayer{},
		Leaders:  []model.Leader{},
	}
	if t, ok := in.teams[ref.ID]; ok && ref.ID != "" {
		ta.Standings = standings(t, in.ranks[t.ID])
	}
	for _, ti := range in.snap.Injuries {
		if ref.ID != "" && ti.TeamID == ref.ID {
			if ti.Players != nil {
				ta.Injuries = ti.Players
			}
			break
		}
	}
	for _, l := range in.snap.Leaders {
		if ref.ID != "" && l.TeamID == ref.ID {
			ta.Leaders = append(ta.Leaders, l)
		}
	}
	return ta
}

func standings(t model.StandingsTeam, overallRank int) *types.Standings {
	home, _ := t.Record("home")
	road, _ := t.Record("road")
	return &types.Standings{
		Overall: types.OverallStanding{
			Wins:                  t.Wins,
			Losses:                t.Losses,
			WinPct:                t.WinPct,
			ConferenceGamesBehind: t.ConferenceGamesBehind,
			ConferenceRank:        t.ConferenceRank,
			OverallRank:           overallRank,
			PointsFor:             t.PointsFor,
			PointsAgainst:         t.PointsAgainst,
		},
		Home: types.SplitRecord{Wins: home.Wins, Losses: home.Losses, WinPct: home.WinPct},
		Away: types.SplitRecord{Wins: road.Wins, Losses: road.Losses, WinPct: road.WinPct},
	}
}

func findScheduled(schedule []model.ScheduledGame, id string) *model.ScheduledGame {
	for i := range schedule {
		if schedule[i].ID == id {
			return &schedule[i]
		}
	}
	return nil
}

func findLogged(games []model.Game, id string) *model.Game {
	for i := range games {
		if games[i].ID == id {
			return &games[i]
		}
	}
	return nil
}

// mergeGame combines the scheduled and logged views of a game.
func mergeGame(id string, sg *model.ScheduledGame, lg *model.Game) (types.Game, bool) {
	if sg == nil && lg == nil {
		return types.Game{}, false
	}
	g := types.Game{ID: id, Venue: unknownVenue}
	if lg != nil {
		g.Home = model.TeamRef{ID: lg.HomeID, Name: lg.HomeName, Alias: lg.HomeAlias}
		g.Away = model.TeamRef{ID: lg.AwayID, Name: lg.AwayName, Alias: lg.AwayAlias}
		if !lg.Scheduled.IsZero() {
			g.Scheduled = lg.Scheduled.UTC().Format(time.RFC3339)
		}
		g.Status = lg.Status
		g.HomeScore = lg.HomeScore
		g.AwayScore = lg.AwayScore
	}
	if sg != nil {
		g.Title = sg.Title
		g.Home = preferRef(sg.Home, g.Home)
		g.Away = preferRef(sg.Away, g.Away)
		g.Scheduled = first(sg.Scheduled, g.Scheduled)
		if sg.Venue != (model.Venue{}) {
			g.Venue = sg.Venue
		}
		g.Status = first(g.Status, sg.Status)
	}
	g.Status = first(g.Status, statusUpcoming)
	return g, true
}

func preferRef(a, b model.TeamRef) model.TeamRef {
	return model.TeamRef{
		ID:    first(a.ID, b.ID),
		Name:  first(a.Name, b.Name),
		Alias: first(a.Alias, b.Alias),
	}
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
