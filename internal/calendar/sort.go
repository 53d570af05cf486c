package calendar

import (
	"fmt"
	"sort"
	"strings"
)

// SortOrder selects the order of entries in the serialized calendar.
type SortOrder string

const (
	// SortBySource keeps the order in which fixtures were first merged.
	SortBySource SortOrder = "source"
	SortByStart  SortOrder = "start"
)

// ParseSortOrder validates a sort order name.
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortBySource, SortByStart:
		return order, nil
	case "":
		return SortBySource, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'source' or 'start')", s)
	}
}

// sortEntries orders entries in place
func sortEntries(entries []*Entry, order SortOrder) {
	if order != SortByStart {
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return compareByStart(entries[i], entries[j])
	})
}

// compareByStart reports whether i should come before j. Entries without a
// start time go last; ties fall back to UID.
func compareByStart(i, j *Entry) bool {
	bi, bj := i.Event.Begin, j.Event.Begin

	if !bi.IsZero() && !bj.IsZero() && !bi.Equal(bj) {
		return bi.Before(bj)
	}
	if !bi.IsZero() && bj.IsZero() {
		return true
	}
	if bi.IsZero() && !bj.IsZero() {
		return false
	}
	return i.UID < j.UID
}
