package team

import (
	"regexp"
	"strings"
)

// Fixture holds the two participants parsed from an event title.
type Fixture struct {
	Home string
	Away string
}

// String renders the fixture as "Home v Away".
func (f Fixture) String() string {
	return f.Home + " v " + f.Away
}

// Complete reports whether both participants are known.
func (f Fixture) Complete() bool {
	return f.Home != "" && f.Away != ""
}

// delimiter matches "vs", "v", dashes or a colon as standalone tokens.
// Hyphens inside words and label colons such as "Premier League: Round 5"
// are left alone.
var delimiter = regexp.MustCompile(`(?i)\s+(?:vs\.?|v\.?|–|-|—|:)\s+`)

// ExtractTeams splits text on the first delimiter and normalizes both sides.
// It reports false when the text is empty or has no delimiter.
//
// Handled forms include:
//
//	Liverpool v Chelsea
//	Chelsea vs. Liverpool
//	Chelsea - Liverpool
//	Liverpool — Chelsea
//	Liverpool : Chelsea
func ExtractTeams(text string) (Fixture, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Fixture{}, false
	}

	parts := delimiter.Split(text, -1)
	if len(parts) < 2 {
		return Fixture{}, false
	}

	return Fixture{
		Home: Normalize(parts[0]),
		Away: Normalize(parts[1]),
	}, true
}
