package calendar

import (
	ics "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/bigmatches/internal/competition"
	"github.com/pfrederiksen/bigmatches/internal/event"
	"github.com/pfrederiksen/bigmatches/internal/team"
)

const (
	DefaultName = "Big Matches (PL, LaLiga, UCL)"
	// Timezone is the calendar-level marker only; events keep their own
	// TZID or offset.
	Timezone  = "UTC"
	ProductID = "-//Big Matches//bigmatches//EN"
)

// Entry is an event accepted into the merged calendar. Only events
// returned by Parse are serialized.
type Entry struct {
	UID         string
	Competition competition.Key
	Fixture     team.Fixture
	Event       *event.Event
}

// Merged is the output calendar. Entries are unique by UID and kept in the
// order their UID was first added.
type Merged struct {
	name    string
	entries []*Entry
	index   map[string]int
}

// NewMerged creates an empty merged calendar with the given display name.
func NewMerged(name string) *Merged {
	if name == "" {
		name = DefaultName
	}
	return &Merged{
		name:  name,
		index: make(map[string]int),
	}
}

// Name returns the calendar display name.
func (m *Merged) Name() string {
	return m.name
}

// Add stores an entry, replacing any existing entry with the same UID.
// It reports whether the UID was new.
func (m *Merged) Add(entry *Entry) bool {
	if i, ok := m.index[entry.UID]; ok {
		m.entries[i] = entry
		return false
	}
	m.index[entry.UID] = len(m.entries)
	m.entries = append(m.entries, entry)
	return true
}

// Len returns the number of distinct entries.
func (m *Merged) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries in insertion order.
func (m *Merged) Entries() []*Entry {
	out := make([]*Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Serialize renders the calendar as iCalendar text with entries in the
// given order. Each VTIMEZONE referenced by an emitted event is written
// once, ahead of the events.
func (m *Merged) Serialize(order SortOrder) string {
	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(m.name)
	cal.SetXWRTimezone(Timezone)

	entries := m.Entries()
	sortEntries(entries, order)

	var events []*ics.VEvent
	emitted := make(map[string]bool)
	for _, entry := range entries {
		ve := entry.component()
		if ve == nil {
			continue
		}
		events = append(events, ve)

		for _, tz := range entry.Event.Timezones {
			id := timezoneID(tz)
			if emitted[id] {
				continue
			}
			emitted[id] = true
			cal.Components = append(cal.Components, tz)
		}
	}

	for _, ve := range events {
		cal.AddVEvent(ve)
	}

	return cal.Serialize()
}

// component returns the source VEVENT carrying the resolved UID, or nil
// for an event that was not read from a feed.
func (e *Entry) component() *ics.VEvent {
	ve := e.Event.Component
	if ve == nil {
		return nil
	}
	ve.SetProperty(ics.ComponentPropertyUniqueId, e.UID)
	return ve
}
