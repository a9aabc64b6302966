package quarters

import (
	"sort"

	"github.com/okian/edgefinder/internal/domain/model"
)

// TeamStanding is a team's quarter-by-quarter scoring record.
type TeamStanding struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Alias string            `json:"alias"`
	Stats map[Quarter]Split `json:"stats"`
}

// Standings tallies every team appearing in a closed game, ordered by name.
func Standings(games []model.Game) []TeamStanding {
	_, teams := accumulate(games)
	idx := make(map[string]*TeamStanding, len(teams))
	for _, g := range games {
		if !g.Closed() {
			continue
		}
		for _, ref := range []model.TeamRef{
			{ID: g.HomeID, Name: g.HomeName, Alias: g.HomeAlias},
			{ID: g.AwayID, Name: g.AwayName, Alias: g.AwayAlias},
		} {
			if ref.ID == "" {
				continue
			}
			if _, ok := idx[ref.ID]; ok {
				continue
			}
			ts := &TeamStanding{ID: ref.ID, Name: ref.Name, Alias: ref.Alias, Stats: make(map[Quarter]Split, len(Buckets))}
			for _, q := range Buckets {
				if agg, ok := teams[ref.ID]; ok {
					ts.Stats[q] = *agg[q]
				} else {
					ts.Stats[q] = Split{}
				}
			}
			idx[ref.ID] = ts
		}
	}
	out := make([]TeamStanding, 0, len(idx))
	for _, ts := range idx {
		out = append(out, *ts)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
