// Package qualifier decides whether a fixture is a big match: both teams
// must be big clubs of the fixture's competition.
package qualifier

import (
	"github.com/pfrederiksen/bigmatches/internal/competition"
	"github.com/pfrederiksen/bigmatches/internal/event"
	"github.com/pfrederiksen/bigmatches/internal/team"
)

// Result describes an accepted fixture.
type Result struct {
	Competition competition.Key
	Fixture     team.Fixture
}

// Reason explains why an event was rejected.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonUnknownCompetition Reason = "unknown_competition"
	ReasonNoTeams            Reason = "no_teams"
	ReasonNotBig             Reason = "not_big_match"
)

// Qualify reports whether evt is a big match. label is the configuration
// key the event's feed was listed under; a label naming a supported
// competition wins over anything the event text suggests.
func Qualify(evt *event.Event, label string) (Result, bool) {
	res, reason := Evaluate(evt, label)
	return res, reason == ReasonNone
}

// Evaluate is Qualify with the rejection reason. The returned Result holds
// whatever was resolved before the event was rejected.
func Evaluate(evt *event.Event, label string) (Result, Reason) {
	var res Result

	key, ok := ResolveCompetition(evt, label)
	if !ok {
		return res, ReasonUnknownCompetition
	}
	res.Competition = key

	fixture, ok := ResolveFixture(evt)
	if !ok {
		return res, ReasonNoTeams
	}
	res.Fixture = fixture

	if !competition.IsBig(key, fixture.Home) || !competition.IsBig(key, fixture.Away) {
		return res, ReasonNotBig
	}
	return res, ReasonNone
}

// ResolveCompetition uses the feed label when it names a competition and
// falls back to guessing from the event text.
func ResolveCompetition(evt *event.Event, label string) (competition.Key, bool) {
	if key, ok := competition.Lookup(label); ok {
		return key, true
	}
	return competition.Guess(evt.Title, evt.Description, evt.Location)
}

// ResolveFixture parses the teams from the title, then from the
// description when the title yields no complete pair.
func ResolveFixture(evt *event.Event) (team.Fixture, bool) {
	if f, ok := team.ExtractTeams(evt.Title); ok && f.Complete() {
		return f, true
	}
	if f, ok := team.ExtractTeams(evt.Description); ok && f.Complete() {
		return f, true
	}
	return team.Fixture{}, false
}
