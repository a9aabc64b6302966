package model

// TeamRef identifies a team inside schedule and leader feeds.
type TeamRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// RatingRow is one line of the team rating table, kept as raw text.
type RatingRow struct {
	Team   string
	Rating string
	Wins   string
	Losses string
	Games  string
}

// SeasonAggregate carries season point totals used by the totals projection.
type SeasonAggregate struct {
	PointsFor     float64
	PointsAgainst float64
}

// Record is a split record such as home or road.
type Record struct {
	Type   string  `json:"record_type"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	WinPct float64 `json:"win_pct"`
}

// StandingsTeam is one team of the league standings.
type StandingsTeam struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Market                string   `json:"market"`
	Conference            string   `json:"conference"`
	Division              string   `json:"division"`
	Wins                  int      `json:"wins"`
	Losses                int      `json:"losses"`
	WinPct                float64  `json:"win_pct"`
	PointsFor             float64  `json:"points_for"`
	PointsAgainst         float64  `json:"points_against"`
	ConferenceGamesBehind float64  `json:"conference_games_behind"`
	ConferenceRank        int      `json:"conference_rank"`
	Records               []Record `json:"records,omitempty"`
}

// Aggregate returns the season totals used for projection.
func (t StandingsTeam) Aggregate() SeasonAggregate {
	return SeasonAggregate{PointsFor: t.PointsFor, PointsAgainst: t.PointsAgainst}
}

// Record returns the split record of the given type, if present.
func (t StandingsTeam) Record(recordType string) (Record, bool) {
	for _, r := range t.Records {
		if r.Type == recordType {
			return r, true
		}
	}
	return Record{}, false
}

// Venue is where a scheduled game is played.
type Venue struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// ScheduledGame is an upcoming or in-progress game from the daily schedule.
type ScheduledGame struct {
	ID        string  `json:"id"`
	Title     string  `json:"title,omitempty"`
	Scheduled string  `json:"scheduled"`
	Status    string  `json:"status"`
	Home      TeamRef `json:"home"`
	Away      TeamRef `json:"away"`
	Venue     Venue   `json:"venue"`
}

// InjuredPlayer is an entry of a team's injury report.
type InjuredPlayer struct {
	Name   string `json:"player_name"`
	Status string `json:"status"`
	Desc   string `json:"desc"`
}

// TeamInjuries groups the injury report of one team.
type TeamInjuries struct {
	TeamID   string          `json:"team_id"`
	TeamName string          `json:"team_name"`
	Players  []InjuredPlayer `json:"players"`
}

// Leader is one player ranked in a statistical category.
type Leader struct {
	Category   string  `json:"category"`
	Player     string  `json:"full_name"`
	Average    float64 `json:"average"`
	TeamID     string  `json:"team_id"`
	TeamName   string  `json:"team_name"`
	TeamMarket string  `json:"team_market"`
}

// LeaderCategories are the statistical categories attached to a matchup.
var LeaderCategories = []string{"points", "assists", "rebounds", "three_points_made"}

// Snapshot bundles every dataset consumed by one projection request.
type Snapshot struct {
	Games     []Game
	Ratings   []RatingRow
	Standings []StandingsTeam
	Schedule  []ScheduledGame
	Injuries  []TeamInjuries
	Leaders   []Leader
}
