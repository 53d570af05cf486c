// Package competition names the supported football competitions, holds the
// big-club set of each one, and guesses a competition from free event text.
package competition

import (
	"sort"
	"strings"
)

// Key identifies a supported competition.
type Key string

const (
	PremierLeague   Key = "Premier League"
	LaLiga          Key = "La Liga"
	ChampionsLeague Key = "Champions League"
)

var (
	premierLeagueBig = []string{
		"Chelsea", "Arsenal", "Manchester United", "Manchester City",
		"Tottenham Hotspur", "Liverpool",
	}
	laLigaBig = []string{"FC Barcelona", "Real Madrid", "Atletico Madrid"}

	bigTeams = map[Key]map[string]bool{
		PremierLeague:   setOf(premierLeagueBig),
		LaLiga:          setOf(laLigaBig),
		ChampionsLeague: setOf(premierLeagueBig, laLigaBig, []string{"Bayern Munich"}),
	}
)

func setOf(groups ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, g := range groups {
		for _, name := range g {
			set[name] = true
		}
	}
	return set
}

// Keys returns the supported competitions in classification priority order.
func Keys() []Key {
	return []Key{PremierLeague, LaLiga, ChampionsLeague}
}

// Lookup returns the Key for a configuration label that names a supported
// competition exactly.
func Lookup(label string) (Key, bool) {
	key := Key(label)
	if _, ok := bigTeams[key]; ok {
		return key, true
	}
	return "", false
}

// IsBig reports whether the canonical team name belongs to the big-club set
// of the competition.
func IsBig(key Key, name string) bool {
	return bigTeams[key][name]
}

// BigTeams returns the sorted big-club names for a competition.
func BigTeams(key Key) []string {
	names := make([]string, 0, len(bigTeams[key]))
	for name := range bigTeams[key] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// markers are checked in order; the first competition with a hit wins.
var markers = []struct {
	key      Key
	keywords []string
}{
	{PremierLeague, []string{"premier league", "epl"}},
	{LaLiga, []string{"la liga", "laliga", "la liga ea sports"}},
	{ChampionsLeague, []string{"champions league", "uefa champions league", "ucl"}},
}

// Guess infers a competition from an event's title, description and
// location. Keywords are plain substrings of the lowercased text. When the
// text mentions several competitions, Premier League beats La Liga, which
// beats Champions League.
func Guess(title, description, location string) (Key, bool) {
	fields := make([]string, 0, 3)
	for _, f := range []string{title, description, location} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	text := strings.ToLower(strings.Join(fields, " "))

	for _, m := range markers {
		for _, kw := range m.keywords {
			if strings.Contains(text, kw) {
				return m.key, true
			}
		}
	}
	return "", false
}
