package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/edgefinder/internal/domain/model"
)

// table is a header-keyed view over CSV records.
type table struct {
	cols map[string]int
	rows [][]string
}

func (t *table) has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// readTable parses CSV with a header row. Blank lines are skipped and
// ragged rows are tolerated; missing cells read as empty.
func readTable(b []byte) (*table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return &table{cols: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrFormat, err)
	}
	t := &table{cols: make(map[string]int, len(header))}
	for i, h := range header {
		t.cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if blank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseGames(b []byte) ([]model.Game, error) {
	t, err := readTable(b)
	if err != nil {
		return nil, err
	}
	if len(t.rows) > 0 && (!t.has("game_id") || !t.has("home_id") || !t.has("away_id")) {
		return nil, fmt.Errorf("%w: games need game_id, home_id and away_id columns", ErrFormat)
	}
	games := make([]model.Game, 0, len(t.rows))
	for _, row := range t.rows {
		g := model.Game{
			ID:        t.get(row, "game_id"),
			Status:    t.get(row, "status"),
			Scheduled: model.ParseScheduled(t.get(row, "scheduled")),
			HomeID:    t.get(row, "home_id"),
			HomeName:  t.get(row, "home_name"),
			HomeAlias: t.get(row, "home_alias"),
			AwayID:    t.get(row, "away_id"),
			AwayName:  t.get(row, "away_name"),
			AwayAlias: t.get(row, "away_alias"),
			HomeScore: t.get(row, "home_score"),
			AwayScore: t.get(row, "away_score"),
		}
		for i := 0; i < model.Periods; i++ {
			g.HomeQuarters[i] = t.get(row, fmt.Sprintf("home_q%d", i+1))
			g.AwayQuarters[i] = t.get(row, fmt.Sprintf("away_q%d", i+1))
			g.HomeOvertime[i] = t.get(row, fmt.Sprintf("home_ot%d", i+1))
			g.AwayOvertime[i] = t.get(row, fmt.Sprintf("away_ot%d", i+1))
		}
		games = append(games, g)
	}
	return games, nil
}

func parseRatings(b []byte) ([]model.RatingRow, error) {
	t, err := readTable(b)
	if err != nil {
		return nil, err
	}
	if len(t.rows) > 0 && !t.has("team") {
		return nil, fmt.Errorf("%w: ratings need a team column", ErrFormat)
	}
	rows := make([]model.RatingRow, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, model.RatingRow{
			Team:   t.get(row, "team"),
			Rating: t.get(row, "elo_final"),
			Wins:   t.get(row, "wins"),
			Losses: t.get(row, "losses"),
			Games:  t.get(row, "games"),
		})
	}
	return rows, nil
}
