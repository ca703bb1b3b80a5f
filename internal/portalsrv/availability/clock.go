// Package availability implements the resource availability
// reconciliation engine: it merges locally authored events, external
// ad-hoc reservations, and external recurring class schedules into one
// candidate set, resolves resource identity across the three key
// spaces, deduplicates cross-source copies of the same booking, and
// classifies the survivors against a requested time slot.
package availability

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock converts a time-of-day representation to a minute-of-day.
// Accepted forms: "HH:MM", "HH:MM:SS", an ISO date-time fragment
// ("2026-02-10T09:30", with optional seconds/zone suffix), and 12-hour
// "H:MM am/pm". Anything else returns ok=false; the function never
// guesses and never panics.
func ParseClock(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	// ISO date-time fragment: take the clock part after 'T'
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[i+1:]
		// strip zone suffix
		for _, sep := range []string{"Z", "+", "-"} {
			if j := strings.Index(s, sep); j >= 0 {
				s = s[:j]
			}
		}
	}

	lower := strings.ToLower(s)
	meridiem := ""
	for _, m := range []string{"am", "pm", "a.m.", "p.m."} {
		if strings.HasSuffix(lower, m) {
			meridiem = string(m[0])
			s = strings.TrimSpace(s[:len(s)-len(m)])
			break
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
			return 0, false
		}
	}
	if minute < 0 || minute > 59 {
		return 0, false
	}

	switch meridiem {
	case "a":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "p":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, false
		}
	}
	return hour*60 + minute, true
}

// FormatClock renders a minute-of-day for human display ("9:30 AM").
// Lossy with respect to seconds and zone; out-of-range input is
// clamped into the day.
func FormatClock(minute int) string {
	if minute < 0 {
		minute = 0
	}
	if minute >= minutesPerDay {
		minute = minutesPerDay - 1
	}
	hour := minute / 60
	min := minute % 60
	meridiem := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, min, meridiem)
}
