// Package form summarizes a team's recent results over recency windows.
package form

import (
	"sort"
	"time"

	"github.com/okian/edgefinder/internal/domain/model"
)

// Window is the win/loss tally of one recency window.
type Window struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Summary holds the three recency windows of a team.
type Summary struct {
	Last10       Window `json:"last10"`
	Last5Context Window `json:"last5_context"`
	Last5Days    Window `json:"last5_days"`
}

// Summarizer computes form summaries with configurable window sizes.
type Summarizer struct {
	recentGames  int
	contextGames int
	window       time.Duration
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithRecentGames sets the size of the overall window.
func WithRecentGames(n int) Option {
	return func(s *Summarizer) {
		if n > 0 {
			s.recentGames = n
		}
	}
}

// WithContextGames sets the size of the home/away window.
func WithContextGames(n int) Option {
	return func(s *Summarizer) {
		if n > 0 {
			s.contextGames = n
		}
	}
}

// WithWindowDays sets the trailing day window.
func WithWindowDays(days int) Option {
	return func(s *Summarizer) {
		if days > 0 {
			s.window = time.Duration(days) * 24 * time.Hour
		}
	}
}

// NewSummarizer returns a summarizer with 10/5 game windows and a 5 day
// trailing window unless overridden.
func NewSummarizer(opts ...Option) *Summarizer {
	s := &Summarizer{recentGames: 10, contextGames: 5, window: 5 * 24 * time.Hour}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize uses the default window sizes.
func Summarize(games []model.Game, teamID string, ctx model.Context, now time.Time) Summary {
	return NewSummarizer().Summarize(games, teamID, ctx, now)
}

type played struct {
	when      time.Time
	side      model.Context
	own, opp  float64
	parseable bool
}

// Summarize tallies the closed games of teamID. Games whose final score
// does not parse keep their place in the ordering but are left out of the
// tally. A tie is a loss.
func (s *Summarizer) Summarize(games []model.Game, teamID string, ctx model.Context, now time.Time) Summary {
	var history []played
	for _, g := range games {
		if !g.Closed() {
			continue
		}
		side, ok := g.Side(teamID)
		if !ok {
			continue
		}
		own, opp, parsed := g.FinalScore(teamID)
		history = append(history, played{when: g.Scheduled, side: side, own: own, opp: opp, parseable: parsed})
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].when.After(history[j].when) })

	var out Summary
	recent := history
	if len(recent) > s.recentGames {
		recent = recent[:s.recentGames]
	}
	out.Last10 = tally(recent)

	inContext := make([]played, 0, s.contextGames)
	for _, p := range history {
		if len(inContext) == s.contextGames {
			break
		}
		if p.side == ctx {
			inContext = append(inContext, p)
		}
	}
	out.Last5Context = tally(inContext)

	cutoff := now.Add(-s.window)
	var trailing []played
	for _, p := range history {
		if !p.when.IsZero() && !p.when.Before(cutoff) {
			trailing = append(trailing, p)
		}
	}
	out.Last5Days = tally(trailing)
	return out
}

func tally(ps []played) Window {
	var w Window
	for _, p := range ps {
		if !p.parseable {
			continue
		}
		w.Games++
		if p.own > p.opp {
			w.Wins++
		} else {
			w.Losses++
		}
	}
	return w
}
