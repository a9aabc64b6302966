package identity

import "strings"

// Team is one entry of the alias dictionary.
type Team struct {
	Alias    string `koanf:"alias" json:"alias"`
	Nickname string `koanf:"nickname" json:"nickname"`
	FullName string `koanf:"full_name" json:"full_name"`
}

// Dictionary maps three-letter aliases to nicknames and full names.
// It is immutable once built.
type Dictionary struct {
	nicknames   map[string]string
	fullNames   map[string]string
	nickToAlias map[string]string
}

// NewDictionary builds a dictionary from team entries. Aliases are stored
// upper-cased; entries without an alias are ignored.
func NewDictionary(teams []Team) *Dictionary {
	d := &Dictionary{
		nicknames:   make(map[string]string, len(teams)),
		fullNames:   make(map[string]string, len(teams)),
		nickToAlias: make(map[string]string, len(teams)),
	}
	for _, t := range teams {
		alias := strings.ToUpper(strings.TrimSpace(t.Alias))
		if alias == "" {
			continue
		}
		if t.Nickname != "" {
			d.nicknames[alias] = t.Nickname
			if key := Normalize(t.Nickname); key != "" {
				d.nickToAlias[key] = alias
			}
		}
		if t.FullName != "" {
			d.fullNames[alias] = t.FullName
		}
	}
	return d
}

// Nickname returns the nickname registered for alias.
func (d *Dictionary) Nickname(alias string) (string, bool) {
	v, ok := d.nicknames[strings.ToUpper(strings.TrimSpace(alias))]
	return v, ok
}

// FullName returns the full name registered for alias.
func (d *Dictionary) FullName(alias string) (string, bool) {
	v, ok := d.fullNames[strings.ToUpper(strings.TrimSpace(alias))]
	return v, ok
}

// AliasOf returns the alias whose nickname normalizes to the same key as label.
func (d *Dictionary) AliasOf(label string) (string, bool) {
	v, ok := d.nickToAlias[Normalize(label)]
	return v, ok
}

// Len returns the number of aliases with a nickname or full name.
func (d *Dictionary) Len() int {
	seen := make(map[string]struct{}, len(d.nicknames))
	for a := range d.nicknames {
		seen[a] = struct{}{}
	}
	for a := range d.fullNames {
		seen[a] = struct{}{}
	}
	return len(seen)
}

// NBA returns the built-in dictionary of the thirty NBA franchises.
func NBA() *Dictionary {
	return NewDictionary(nbaTeams)
}

var nbaTeams = []Team{
	{Alias: "ATL", Nickname: "Hawks", FullName: "Atlanta Hawks"},
	{Alias: "BOS", Nickname: "Celtics", FullName: "Boston Celtics"},
	{Alias: "BKN", Nickname: "Nets", FullName: "Brooklyn Nets"},
	{Alias: "CHA", Nickname: "Hornets", FullName: "Charlotte Hornets"},
	{Alias: "CHI", Nickname: "Bulls", FullName: "Chicago Bulls"},
	{Alias: "CLE", Nickname: "Cavaliers", FullName: "Cleveland Cavaliers"},
	{Alias: "DAL", Nickname: "Mavericks", FullName: "Dallas Mavericks"},
	{Alias: "DEN", Nickname: "Nuggets", FullName: "Denver Nuggets"},
	{Alias: "DET", Nickname: "Pistons", FullName: "Detroit Pistons"},
	{Alias: "GSW", Nickname: "Warriors", FullName: "Golden State Warriors"},
	{Alias: "HOU", Nickname: "Rockets", FullName: "Houston Rockets"},
	{Alias: "IND", Nickname: "Pacers", FullName: "Indiana Pacers"},
	{Alias: "LAC", Nickname: "Clippers", FullName: "Los Angeles Clippers"},
	{Alias: "LAL", Nickname: "Lakers", FullName: "Los Angeles Lakers"},
	{Alias: "MEM", Nickname: "Grizzlies", FullName: "Memphis Grizzlies"},
	{Alias: "MIA", Nickname: "Heat", FullName: "Miami Heat"},
	{Alias: "MIL", Nickname: "Bucks", FullName: "Milwaukee Bucks"},
	{Alias: "MIN", Nickname: "Timberwolves", FullName: "Minnesota Timberwolves"},
	{Alias: "NOP", Nickname: "Pelicans", FullName: "New Orleans Pelicans"},
	{Alias: "NYK", Nickname: "Knicks", FullName: "New York Knicks"},
	{Alias: "OKC", Nickname: "Thunder", FullName: "Oklahoma City Thunder"},
	{Alias: "ORL", Nickname: "Magic", FullName: "Orlando Magic"},
	{Alias: "PHI", Nickname: "76ers", FullName: "Philadelphia 76ers"},
	{Alias: "PHX", Nickname: "Suns", FullName: "Phoenix Suns"},
	{Alias: "POR", Nickname: "Trail Blazers", FullName: "Portland Trail Blazers"},
	{Alias: "SAC", Nickname: "Kings", FullName: "Sacramento Kings"},
	{Alias: "SAS", Nickname: "Spurs", FullName: "San Antonio Spurs"},
	{Alias: "TOR", Nickname: "Raptors", FullName: "Toronto Raptors"},
	{Alias: "UTA", Nickname: "Jazz", FullName: "Utah Jazz"},
	{Alias: "WAS", Nickname: "Wizards", FullName: "Washington Wizards"},
}
