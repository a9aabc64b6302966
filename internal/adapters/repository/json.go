package repository

import (
	"encoding/json"
	"fmt"

	"github.com/okian/edgefinder/internal/domain/model"
)

type standingsDoc struct {
	Conferences []struct {
		Name      string `json:"name"`
		Divisions []struct {
			Name  string          `json:"name"`
			Teams []standingsTeam `json:"teams"`
		} `json:"divisions"`
	} `json:"conferences"`
}

type standingsTeam struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Market        string  `json:"market"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPct        float64 `json:"win_pct"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
	GamesBehind   struct {
		Conference float64 `json:"conference"`
	} `json:"games_behind"`
	CalcRank struct {
		ConfRank int `json:"conf_rank"`
	} `json:"calc_rank"`
	Records []model.Record `json:"records"`
}

func parseStandings(b []byte) ([]model.StandingsTeam, error) {
	var doc standingsDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: standings: %w", ErrFormat, err)
	}
	var teams []model.StandingsTeam
	for _, conf := range doc.Conferences {
		for _, div := range conf.Divisions {
			for _, t := range div.Teams {
				teams = append(teams, model.StandingsTeam{
					ID:                    t.ID,
					Name:                  t.Name,
					Market:                t.Market,
					Conference:            conf.Name,
					Division:              div.Name,
					Wins:                  t.Wins,
					Losses:                t.Losses,
					WinPct:                t.WinPct,
					PointsFor:             t.PointsFor,
					PointsAgainst:         t.PointsAgainst,
					ConferenceGamesBehind: t.GamesBehind.Conference,
					ConferenceRank:        t.CalcRank.ConfRank,
					Records:               t.Records,
				})
			}
		}
	}
	return teams, nil
}

type scheduleDoc struct {
	Games []model.ScheduledGame `json:"games"`
}

func parseSchedule(b []byte) ([]model.ScheduledGame, error) {
	var doc scheduleDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: schedule: %w", ErrFormat, err)
	}
	return doc.Games, nil
}

func parseInjuries(b []byte) ([]model.TeamInjuries, error) {
	var teams []model.TeamInjuries
	if err := json.Unmarshal(b, &teams); err != nil {
		return nil, fmt.Errorf("%w: injuries: %w", ErrFormat, err)
	}
	return teams, nil
}

type leadersDoc struct {
	Categories []struct {
		Name  string `json:"name"`
		Ranks []struct {
			Player struct {
				FullName string `json:"full_name"`
			} `json:"player"`
			Average map[string]json.RawMessage `json:"average"`
			Teams   []struct {
				ID     string `json:"id"`
				Name   string `json:"name"`
				Market string `json:"market"`
			} `json:"teams"`
		} `json:"ranks"`
	} `json:"categories"`
}

// parseLeaders flattens the categories attached to a matchup. An average
// that is not a number reads as 0.
func parseLeaders(b []byte) ([]model.Leader, error) {
	var doc leadersDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: leaders: %w", ErrFormat, err)
	}
	wanted := make(map[string]bool, len(model.LeaderCategories))
	for _, c := range model.LeaderCategories {
		wanted[c] = true
	}
	var out []model.Leader
	for _, cat := range doc.Categories {
		if !wanted[cat.Name] {
			continue
		}
		for _, r := range cat.Ranks {
			l := model.Leader{Category: cat.Name, Player: r.Player.FullName}
			if raw, ok := r.Average[cat.Name]; ok {
				_ = json.Unmarshal(raw, &l.Average)
			}
			if len(r.Teams) > 0 {
				l.TeamID, l.TeamName, l.TeamMarket = r.Teams[0].ID, r.Teams[0].Name, r.Teams[0].Market
			}
			out = append(out, l)
		}
	}
	return out, nil
}
