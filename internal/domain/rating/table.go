// Package rating ranks teams by a numeric strength rating and answers
// rank/rating lookups for loosely spelled team identities.
package rating

import (
	"sort"
	"strings"

	"github.com/okian/edgefinder/internal/domain/identity"
	"github.com/okian/edgefinder/internal/domain/model"
)

// Entry is one ranked row of the table.
type Entry struct {
	Rank   int     `json:"rank"`
	Team   string  `json:"team"`
	Rating float64 `json:"rating"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Games  int     `json:"games"`
	WinPct float64 `json:"win_pct"`
}

// Table is an immutable snapshot of ranked entries. Rank and rating for a
// team always come from the same entry.
type Table struct {
	entries  []Entry
	index    map[string]int
	resolver *identity.Resolver
}

// Build parses rows, drops those with an empty label, sorts them by rating
// descending (stable) and assigns 1-based ranks. Non-numeric ratings count
// as 0.
func Build(rows []model.RatingRow, resolver *identity.Resolver) *Table {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		team := strings.TrimSpace(row.Team)
		if team == "" {
			continue
		}
		e := Entry{
			Team:   team,
			Rating: model.ParseNumber(row.Rating),
			Wins:   int(model.ParseNumber(row.Wins)),
			Losses: int(model.ParseNumber(row.Losses)),
			Games:  int(model.ParseNumber(row.Games)),
		}
		if e.Games > 0 {
			e.WinPct = float64(e.Wins) / float64(e.Games)
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rating > entries[j].Rating })
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return FromEntries(entries, resolver)
}

// FromEntries rebuilds a table from an already ranked snapshot, such as one
// read back from a cache.
func FromEntries(entries []Entry, resolver *identity.Resolver) *Table {
	if resolver == nil {
		resolver = identity.NewResolver(nil)
	}
	t := &Table{
		entries:  append([]Entry(nil), entries...),
		index:    make(map[string]int, len(entries)*3),
		resolver: resolver,
	}
	for i, e := range t.entries {
		for _, k := range resolver.Keys(e.Team) {
			t.index[k] = i
		}
	}
	return t
}

// Lookup finds the entry for a team by name or alias.
func (t *Table) Lookup(name, alias string) (Entry, bool) {
	key, ok := t.resolver.Resolve(name, alias, t.has)
	if !ok {
		return Entry{}, false
	}
	return t.entries[t.index[key]], true
}

// RankOf returns the 1-based rank of a team.
func (t *Table) RankOf(name, alias string) (int, bool) {
	e, ok := t.Lookup(name, alias)
	return e.Rank, ok
}

// RatingOf returns the rating of a team.
func (t *Table) RatingOf(name, alias string) (float64, bool) {
	e, ok := t.Lookup(name, alias)
	return e.Rating, ok
}

// Entries returns a copy of the ranked snapshot.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of ranked teams.
func (t *Table) Len() int { return len(t.entries) }

func (t *Table) has(key string) bool {
	_, ok := t.index[key]
	return ok
}
