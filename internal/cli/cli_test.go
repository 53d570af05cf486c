package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/bigmatches/internal/calendar"
	"github.com/pfrederiksen/bigmatches/internal/config"
)

const plFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Example//Fixtures//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTAMP:20260101T000000Z\r\n" +
	"DTSTART:20260314T173000Z\r\n" +
	"SUMMARY:Arsenal vs Tottenham Hotspur\r\n" +
	"LOCATION:Emirates Stadium\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func writeSources(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(plFeed)) // nolint:errcheck
	}))
	defer srv.Close()

	dir := t.TempDir()
	sources := writeSources(t, dir, "Premier League:\n  - "+srv.URL+"/pl.ics\n")
	out := filepath.Join(dir, "big_matches.ics")

	stdout, stderr, err := runRoot(t, "--sources", sources, "--out", out)
	if err != nil {
		t.Fatalf("command failed: %v\nstderr: %s", err, stderr)
	}

	var summary Summary
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("expected JSON summary, got %q: %v", stdout, err)
	}
	if summary.EventsIn != 1 || summary.EventsKept != 1 {
		t.Errorf("summary = %+v, want events_in=1 events_kept=1", summary)
	}
	if summary.Out != out {
		t.Errorf("summary out = %q, want %q", summary.Out, out)
	}
	if strings.Count(stdout, "\n") != 1 {
		t.Errorf("expected a single summary line, got %q", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	events, err := calendar.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid calendar: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 event in output, got %d", len(events))
	}
	if events[0].Title != "Arsenal vs Tottenham Hotspur" {
		t.Errorf("unexpected title %q", events[0].Title)
	}
	if !strings.HasSuffix(events[0].UID, "@bigmatches") {
		t.Errorf("expected derived UID, got %q", events[0].UID)
	}
	if !strings.Contains(string(data), "X-WR-TIMEZONE:UTC") {
		t.Error("expected timezone header in output")
	}
}

func TestRootCmd_FailingFeedIsSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken.ics" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(plFeed)) // nolint:errcheck
	}))
	defer srv.Close()

	dir := t.TempDir()
	sources := writeSources(t, dir,
		"Premier League:\n  - "+srv.URL+"/broken.ics\n  - "+srv.URL+"/pl.ics\n")
	out := filepath.Join(dir, "out.ics")

	stdout, stderr, err := runRoot(t, "--sources", sources, "--out", out)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var summary Summary
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("expected JSON summary, got %q: %v", stdout, err)
	}
	if summary.EventsIn != 1 || summary.EventsKept != 1 {
		t.Errorf("summary = %+v, want events_in=1 events_kept=1", summary)
	}
	if !strings.Contains(stderr, "Failed to fetch feed") {
		t.Errorf("expected a warning for the broken feed, got %q", stderr)
	}
}

func TestRootCmd_MissingSources(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, err := runRoot(t,
		"--sources", filepath.Join(dir, "sources.yaml"),
		"--out", filepath.Join(dir, "out.ics"))

	if !errors.Is(err, config.ErrSourcesMissing) {
		t.Fatalf("expected ErrSourcesMissing, got %v", err)
	}
	if !strings.Contains(stderr, "Missing sources.yaml. See README.md.") {
		t.Errorf("expected operator message, got %q", stderr)
	}
	if stdout != "" {
		t.Errorf("expected no summary, got %q", stdout)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.ics")); !os.IsNotExist(statErr) {
		t.Error("output file should not be written")
	}
}

func TestRootCmd_LogLevel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	sources := writeSources(t, dir, "Premier League: "+srv.URL+"/pl.ics\n")
	out := filepath.Join(dir, "out.ics")

	_, stderr, err := runRoot(t, "--sources", sources, "--out", out)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(stderr, "Wrote calendar") {
		t.Errorf("expected info record at the default level, got %q", stderr)
	}

	_, stderr, err = runRoot(t, "--sources", sources, "--out", out, "--log-level", "error")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected warnings and info to be filtered, got %q", stderr)
	}
}

func TestRootCmd_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	sources := writeSources(t, dir, "{}\n")
	out := filepath.Join(dir, "missing", "out.ics")

	_, stderr, err := runRoot(t, "--sources", sources, "--out", out)
	if err == nil {
		t.Fatal("expected error when the output directory does not exist")
	}
	if !strings.Contains(stderr, "Failed to write calendar") {
		t.Errorf("expected an error record, got %q", stderr)
	}
}

func TestRootCmd_InvalidSort(t *testing.T) {
	dir := t.TempDir()
	sources := writeSources(t, dir, "{}\n")

	_, _, err := runRoot(t, "--sources", sources, "--out", filepath.Join(dir, "out.ics"), "--sort", "title")
	if err == nil {
		t.Error("expected error for invalid sort order")
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, &Summary{EventsIn: 12, EventsKept: 3, Out: "big_matches.ics"}); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	want := `{"events_in":12,"events_kept":3,"out":"big_matches.ics"}` + "\n"
	if buf.String() != want {
		t.Errorf("WriteSummary() = %q, want %q", buf.String(), want)
	}
}
