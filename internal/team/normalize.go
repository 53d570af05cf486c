package team

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// aliases maps lowercase NFC spellings to canonical club names.
var aliases = map[string]string{
	// Premier League
	"chelsea":           "Chelsea",
	"arsenal":           "Arsenal",
	"manchester united": "Manchester United",
	"manchester utd":    "Manchester United",
	"man utd":           "Manchester United",
	"man u":             "Manchester United",
	"manchester city":   "Manchester City",
	"man city":          "Manchester City",
	"tottenham hotspur": "Tottenham Hotspur",
	"tottenham":         "Tottenham Hotspur",
	"spurs":             "Tottenham Hotspur",
	"liverpool":         "Liverpool",

	// La Liga
	"fc barcelona":       "FC Barcelona",
	"barcelona":          "FC Barcelona",
	"barça":              "FC Barcelona",
	"barca":              "FC Barcelona",
	"real madrid":        "Real Madrid",
	"atlético madrid":    "Atletico Madrid",
	"atletico madrid":    "Atletico Madrid",
	"atlético de madrid": "Atletico Madrid",

	// Champions League extras
	"bayern munich":  "Bayern Munich",
	"fc bayern":      "Bayern Munich",
	"bayern münchen": "Bayern Munich",
}

var parenthetical = regexp.MustCompile(`\(.*?\)`)

// Normalize returns the canonical name for raw, or raw trimmed when the
// name is unknown. Qualifiers such as "(Men)" are ignored for the lookup.
func Normalize(raw string) string {
	if canonical, ok := aliases[lookupKey(raw)]; ok {
		return canonical
	}
	return strings.TrimSpace(raw)
}

// lookupKey collapses whitespace, lowercases and drops parenthesized text.
func lookupKey(raw string) string {
	s := strings.ToLower(strings.Join(strings.Fields(norm.NFC.String(raw)), " "))
	s = parenthetical.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
