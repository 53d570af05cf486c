// Package calendar reads source iCalendar feeds into events and writes the
// merged big-match calendar.
//
// Parsing and serialization go through golang-ical. The merged calendar
// keeps entries keyed by UID, so adding the same logical fixture twice
// replaces the earlier entry instead of duplicating it.
package calendar
