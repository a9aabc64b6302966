// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Context is the side of a matchup a team plays on.
type Context string

const (
	ContextHome Context = "home"
	ContextAway Context = "away"
)

// StatusClosed marks a finished game whose scores are final.
const StatusClosed = "closed"

// Periods is the number of regulation quarters and also the number of
// overtime columns carried per side in the game log.
const Periods = 4

// Game is one row of the historical game log. Scores are kept as the raw
// text found in the source and parsed on demand.
type Game struct {
	ID        string
	Status    string
	Scheduled time.Time // zero when the source value could not be parsed

	HomeID    string
	HomeName  string
	HomeAlias string
	AwayID    string
	AwayName  string
	AwayAlias string

	HomeScore string
	AwayScore string

	HomeQuarters [Periods]string
	AwayQuarters [Periods]string
	HomeOvertime [Periods]string
	AwayOvertime [Periods]string
}

// Closed reports whether the game is finished.
func (g Game) Closed() bool { return g.Status == StatusClosed }

// Side returns the context teamID played in, if it played at all.
func (g Game) Side(teamID string) (Context, bool) {
	switch {
	case teamID == "":
		return "", false
	case g.HomeID == teamID:
		return ContextHome, true
	case g.AwayID == teamID:
		return ContextAway, true
	}
	return "", false
}

// FinalScore returns the parsed (team, opponent) score for teamID.
func (g Game) FinalScore(teamID string) (own, opp float64, ok bool) {
	side, found := g.Side(teamID)
	if !found {
		return 0, 0, false
	}
	h, hok := ParsePoints(g.HomeScore)
	a, aok := ParsePoints(g.AwayScore)
	if !hok || !aok {
		return 0, 0, false
	}
	if side == ContextHome {
		return h, a, true
	}
	return a, h, true
}

// ParsePoints parses a score cell. Blank or non-numeric cells are reported
// as not ok; fractional values are truncated toward zero.
func ParsePoints(raw string) (float64, bool) {
	v, ok := ParseDecimal(raw)
	return math.Trunc(v), ok
}

// ParseDecimal parses a numeric cell without truncation.
func ParseDecimal(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseNumber parses a numeric cell, returning 0 when it is missing or invalid.
func ParseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseScheduled accepts the timestamp layouts seen in the feeds.
func ParseScheduled(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
