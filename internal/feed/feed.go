package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pfrederiksen/bigmatches/internal/calendar"
	"github.com/pfrederiksen/bigmatches/internal/event"
)

const (
	UserAgent = "bigmatches/1.0 (github.com/pfrederiksen/bigmatches)"
	Timeout   = 30 * time.Second

	// maxBodySize caps a single feed download.
	maxBodySize = 32 << 20
)

// Fetcher downloads and parses calendar feeds
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// New creates a new Fetcher instance
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NormalizeURL rewrites webcal:// subscription links to https://.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	const webcal = "webcal://"
	if len(raw) >= len(webcal) && strings.EqualFold(raw[:len(webcal)], webcal) {
		return "https://" + raw[len(webcal):]
	}
	return raw
}

// Fetch downloads the feed at url and parses its events.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]*event.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, NormalizeURL(url), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/calendar, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	events, err := calendar.Parse(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	return events, nil
}
