package availability

import (
	"strings"
	"time"
)

// MissingPatternPolicy decides how a recurring booking with no day
// pattern is treated. Call sites in the legacy portal disagreed on the
// default, so the policy is always explicit.
type MissingPatternPolicy int

const (
	// MissingMatchesAll treats a pattern-less booking as occurring
	// every day. This is the engine default: a false "busy" gets
	// double-checked by a human, a false "free" becomes a double
	// booking.
	MissingMatchesAll MissingPatternPolicy = iota
	// MissingMatchesNone treats a pattern-less booking as never
	// occurring.
	MissingMatchesNone
)

// dayTokens maps every recognized day token to a weekday. Single-letter
// codes follow the registrar convention: "T" is Tuesday, "R" is
// Thursday.
var dayTokens = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday, "su": time.Sunday, "u": time.Sunday,
	"monday": time.Monday, "mon": time.Monday, "mo": time.Monday, "m": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday, "tu": time.Tuesday, "t": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "we": time.Wednesday, "w": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "th": time.Thursday, "r": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "fr": time.Friday, "f": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "sa": time.Saturday, "s": time.Saturday,
}

// DayMatches reports whether the free-text recurrence pattern includes
// the target weekday. Patterns are tokenized on non-letter separators;
// a run of single-letter codes with no separators ("MWF") is also
// recognized. Empty patterns defer to the policy.
func DayMatches(pattern string, target time.Weekday, missing MissingPatternPolicy) bool {
	if strings.TrimSpace(pattern) == "" {
		return missing == MissingMatchesAll
	}
	for _, token := range tokenizeDays(pattern) {
		if day, ok := dayTokens[token]; ok && day == target {
			return true
		}
		// compact run of single-letter codes, e.g. "MWF" or "TR"
		if _, ok := dayTokens[token]; !ok && allSingleLetterCodes(token) {
			for _, c := range token {
				if dayTokens[string(c)] == target {
					return true
				}
			}
		}
	}
	return false
}

func tokenizeDays(pattern string) []string {
	lower := strings.ToLower(pattern)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}

func allSingleLetterCodes(token string) bool {
	for _, c := range token {
		if _, ok := dayTokens[string(c)]; !ok {
			return false
		}
	}
	return len(token) > 0
}
