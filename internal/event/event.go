package event

import (
	"crypto/sha256"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// DerivedUIDSuffix marks identifiers generated from event content rather
// than issued by the source feed.
const DerivedUIDSuffix = "@bigmatches"

// Event represents one VEVENT read from a source feed. Empty strings mean
// the property was absent.
type Event struct {
	UID         string    `json:"uid,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Begin       time.Time `json:"begin"`

	// BeginText is the raw DTSTART, with any TZID parameter, kept when
	// the start time could not be resolved.
	BeginText string `json:"begin_text,omitempty"`

	// Component is the parsed source component, re-emitted as is.
	Component *ics.VEvent `json:"-"`

	// Timezones are the feed's VTIMEZONE definitions this event refers to.
	Timezones []*ics.VTimezone `json:"-"`
}

// GenerateUID creates a deterministic identifier from title, start time
// and location.
func GenerateUID(title string, begin time.Time, location string) string {
	return hashUID(title, formatBegin(begin), location)
}

// ResolveUID returns the feed-issued UID when present, otherwise a
// generated one.
func (e *Event) ResolveUID() string {
	if e.UID != "" {
		return e.UID
	}
	return hashUID(e.Title, e.beginKey(), e.Location)
}

// beginKey falls back to the raw DTSTART text so fixtures with an
// unresolvable time zone still get distinct identifiers.
func (e *Event) beginKey() string {
	if e.Begin.IsZero() {
		return e.BeginText
	}
	return formatBegin(e.Begin)
}

func hashUID(title, begin, location string) string {
	h := sha256.New()
	h.Write([]byte(title + "|" + begin + "|" + location))
	return fmt.Sprintf("%x", h.Sum(nil)) + DerivedUIDSuffix
}

func formatBegin(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
