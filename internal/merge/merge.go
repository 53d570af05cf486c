// Package merge runs the big-match pipeline over every configured feed and
// collects the qualifying fixtures into one calendar.
//
// Feeds are processed one at a time in configuration order. A feed that
// cannot be fetched or parsed is logged and skipped; it never stops the
// run.
package merge

import (
	"context"
	"time"

	"github.com/pfrederiksen/bigmatches/internal/calendar"
	"github.com/pfrederiksen/bigmatches/internal/config"
	"github.com/pfrederiksen/bigmatches/internal/event"
	"github.com/pfrederiksen/bigmatches/internal/logger"
	"github.com/pfrederiksen/bigmatches/internal/qualifier"
)

// Fetcher loads the events of one feed.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]*event.Event, error)
}

// Result is the outcome of a run.
type Result struct {
	Calendar   *calendar.Merged
	EventsIn   int
	EventsKept int
	// FailedFeeds lists URLs that were skipped because of an error.
	FailedFeeds []string
}

// Merger combines feeds into a merged calendar.
type Merger struct {
	fetcher      Fetcher
	calendarName string
	metrics      *logger.Metrics
}

// New creates a Merger. An empty calendarName uses the default name.
func New(fetcher Fetcher, calendarName string) *Merger {
	return &Merger{
		fetcher:      fetcher,
		calendarName: calendarName,
		metrics:      logger.NewMetrics(),
	}
}

// Metrics returns the counters and timings recorded by Run.
func (m *Merger) Metrics() *logger.Metrics {
	return m.metrics
}

// Run fetches every source in order and merges the qualifying events.
func (m *Merger) Run(ctx context.Context, sources []config.Source) *Result {
	result := &Result{
		Calendar: calendar.NewMerged(m.calendarName),
	}

	for _, src := range sources {
		for _, url := range src.URLs {
			events, err := m.fetch(ctx, url)
			if err != nil {
				logger.Warn("Failed to fetch feed", logger.Fields{
					"competition": src.Label,
					"url":         url,
					"error":       err.Error(),
				})
				m.metrics.IncrCounter("feeds.failed")
				result.FailedFeeds = append(result.FailedFeeds, url)
				continue
			}
			m.metrics.IncrCounter("feeds.fetched")

			for _, evt := range events {
				m.add(result, evt, src.Label)
			}
		}
	}

	return result
}

func (m *Merger) fetch(ctx context.Context, url string) ([]*event.Event, error) {
	start := time.Now()
	defer func() {
		m.metrics.RecordTiming("feed.fetch", time.Since(start))
	}()
	return m.fetcher.Fetch(ctx, url)
}

// add counts evt and merges it when it qualifies
func (m *Merger) add(result *Result, evt *event.Event, label string) {
	result.EventsIn++
	m.metrics.IncrCounter("events.in")

	res, reason := qualifier.Evaluate(evt, label)
	if reason != qualifier.ReasonNone {
		logger.Debug("Skipping event", logger.Fields{
			"title":  evt.Title,
			"reason": string(reason),
		})
		return
	}

	entry := &calendar.Entry{
		UID:         evt.ResolveUID(),
		Competition: res.Competition,
		Fixture:     res.Fixture,
		Event:       evt,
	}
	if !result.Calendar.Add(entry) {
		logger.Debug("Replacing duplicate event", logger.Fields{"uid": entry.UID})
	}
	logger.Debug("Keeping event", logger.Fields{
		"competition": string(res.Competition),
		"fixture":     res.Fixture.String(),
		"uid":         entry.UID,
	})

	result.EventsKept++
	m.metrics.IncrCounter("events.kept")
}
