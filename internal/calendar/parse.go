package calendar

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	ics "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/bigmatches/internal/event"
)

// Parse reads an iCalendar document and returns its VEVENTs in feed order.
func Parse(r io.Reader) ([]*event.Event, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	zones := timezones(cal)
	vevents := cal.Events()
	events := make([]*event.Event, 0, len(vevents))
	for _, ve := range vevents {
		evt := &event.Event{
			UID:         strings.TrimSpace(textProperty(ve, ics.ComponentPropertyUniqueId)),
			Title:       textProperty(ve, ics.ComponentPropertySummary),
			Description: PlainText(textProperty(ve, ics.ComponentPropertyDescription)),
			Location:    textProperty(ve, ics.ComponentPropertyLocation),
			Component:   ve,
			Timezones:   referencedTimezones(ve, zones),
		}
		// golang-ical only resolves IANA zone names; Windows names such as
		// "GMT Standard Time" leave Begin zero and keep the raw text.
		if begin, err := ve.GetStartAt(); err == nil {
			evt.Begin = begin
		} else {
			evt.BeginText = startText(ve)
		}
		events = append(events, evt)
	}

	return events, nil
}

// timezones indexes the calendar's VTIMEZONE components by TZID.
func timezones(cal *ics.Calendar) map[string]*ics.VTimezone {
	zones := make(map[string]*ics.VTimezone)
	for _, c := range cal.Components {
		tz, ok := c.(*ics.VTimezone)
		if !ok {
			continue
		}
		if id := timezoneID(tz); id != "" {
			zones[id] = tz
		}
	}
	return zones
}

// timezoneID returns the TZID of a VTIMEZONE component.
func timezoneID(tz *ics.VTimezone) string {
	p := tz.GetProperty(ics.ComponentPropertyTzid)
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.Value)
}

func referencedTimezones(ve *ics.VEvent, zones map[string]*ics.VTimezone) []*ics.VTimezone {
	var refs []*ics.VTimezone
	seen := make(map[string]bool)
	for _, p := range ve.Properties {
		for _, id := range p.ICalParameters[string(ics.ParameterTzid)] {
			tz, ok := zones[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			refs = append(refs, tz)
		}
	}
	return refs
}

// startText renders DTSTART as it appears in the feed, e.g.
// "TZID=GMT Standard Time:20261014T173000".
func startText(ve *ics.VEvent) string {
	p := ve.GetProperty(ics.ComponentPropertyDtStart)
	if p == nil {
		return ""
	}
	if ids := p.ICalParameters[string(ics.ParameterTzid)]; len(ids) > 0 {
		return "TZID=" + strings.Join(ids, ",") + ":" + p.Value
	}
	return p.Value
}

func textProperty(ve *ics.VEvent, prop ics.ComponentProperty) string {
	p := ve.GetProperty(prop)
	if p == nil {
		return ""
	}
	return unescapeICS(p.Value)
}

// unescapeICS reverses RFC 5545 TEXT escaping
func unescapeICS(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		case ',', ';', '\\':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// PlainText returns s with any HTML markup removed. Feeds often ship
// descriptions as HTML fragments; plain text passes through unchanged.
func PlainText(s string) string {
	if !looksLikeHTML(s) {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	// Keep line structure so titles split across <br> or <p> stay apart.
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func looksLikeHTML(s string) bool {
	i := strings.Index(s, "<")
	return i >= 0 && strings.Contains(s[i:], ">")
}
