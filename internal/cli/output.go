package cli

import (
	"encoding/json"
	"io"
)

// Summary is the single status line printed after a run.
type Summary struct {
	EventsIn   int    `json:"events_in"`
	EventsKept int    `json:"events_kept"`
	Out        string `json:"out"`
}

// WriteSummary writes s as one compact JSON line.
func WriteSummary(w io.Writer, s *Summary) error {
	return json.NewEncoder(w).Encode(s)
}
