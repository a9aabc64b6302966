// Package totals projects final scores from season scoring aggregates.
package totals

import "github.com/okian/edgefinder/internal/domain/model"

// DefaultTiltCoefficient converts a rating difference into points.
const DefaultTiltCoefficient = 0.02

// Simple sums each team's season points-for.
type Simple struct {
	Home  float64 `json:"home"`
	Away  float64 `json:"away"`
	Total float64 `json:"total"`
}

// RatingAdjusted scales each team's attack by the opponent's defense and
// then shifts points toward the higher rated side.
type RatingAdjusted struct {
	Home        float64 `json:"home"`
	Away        float64 `json:"away"`
	Total       float64 `json:"total"`
	Margin      float64 `json:"margin"`
	BaseHome    float64 `json:"base_home"`
	BaseAway    float64 `json:"base_away"`
	BaseTotal   float64 `json:"base_total"`
	BaseMargin  float64 `json:"base_margin"`
	Tilt        float64 `json:"tilt"`
	AttackHome  float64 `json:"attack_home"`
	DefenseHome float64 `json:"defense_home"`
	AttackAway  float64 `json:"attack_away"`
	DefenseAway float64 `json:"defense_away"`
}

// Projection carries both models side by side.
type Projection struct {
	Simple         Simple         `json:"simple"`
	RatingAdjusted RatingAdjusted `json:"rating_adjusted"`
}

// LeagueAverage is the mean season points-for over every team.
func LeagueAverage(teams []model.StandingsTeam) float64 {
	if len(teams) == 0 {
		return 0
	}
	var sum float64
	for _, t := range teams {
		sum += t.PointsFor
	}
	return sum / float64(len(teams))
}

// Project computes both variants. A missing rating counts as 0 in the tilt,
// and a non-positive league average zeroes the rating-adjusted variant. The tilt is computed once and applied with opposite signs, so
// the adjusted total equals the base total.
func Project(home, away model.SeasonAggregate, leagueAvg float64, homeRating, awayRating *float64, tiltK float64) Projection {
	p := Projection{
		Simple: Simple{
			Home:  home.PointsFor,
			Away:  away.PointsFor,
			Total: home.PointsFor + away.PointsFor,
		},
	}
	if leagueAvg <= 0 {
		return p
	}

	r := &p.RatingAdjusted
	r.AttackHome = home.PointsFor / leagueAvg
	r.DefenseHome = home.PointsAgainst / leagueAvg
	r.AttackAway = away.PointsFor / leagueAvg
	r.DefenseAway = away.PointsAgainst / leagueAvg

	r.BaseHome = leagueAvg * r.AttackHome * r.DefenseAway
	r.BaseAway = leagueAvg * r.AttackAway * r.DefenseHome
	r.BaseTotal = r.BaseHome + r.BaseAway
	r.BaseMargin = r.BaseHome - r.BaseAway

	r.Tilt = tiltK * (valueOrZero(homeRating) - valueOrZero(awayRating))
	r.Home = r.BaseHome + r.Tilt
	r.Away = r.BaseAway - r.Tilt
	r.Total = r.Home + r.Away
	r.Margin = r.Home - r.Away
	return p
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
