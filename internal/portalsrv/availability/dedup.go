package availability

import (
	"strconv"
	"strings"
)

// Deduplicator collapses candidates that represent the same physical
// booking seen through more than one source.
type Deduplicator struct {
	// overlapFraction is the minimum share of the shorter duration two
	// intervals must share before a reservation is folded into a local
	// event on the same resource.
	overlapFraction float64
}

func NewDeduplicator(overlapFraction float64) *Deduplicator {
	if overlapFraction <= 0 || overlapFraction > 1 {
		overlapFraction = 0.8
	}
	return &Deduplicator{overlapFraction: overlapFraction}
}

// Dedup applies the cross-source rules in order:
//  1. a local event that carries a stored reservation ID absorbs the
//     matching external reservation (the local copy may carry edits);
//  2. an external reservation is absorbed by a local event on the same
//     resolved resource when their intervals overlap at least the
//     configured fraction of the shorter duration;
//  3. exact-duplicate reservation IDs from paging overlap collapse;
//  4. schedule candidates dedupe only among themselves, by
//     (class, resource) pair.
//
// Input order is preserved for survivors.
func (d *Deduplicator) Dedup(candidates []Candidate) []Candidate {
	var locals []Candidate
	linkedReservations := make(map[string]bool)
	for _, c := range candidates {
		if c.Origin == OriginLocal {
			locals = append(locals, c)
			if c.ExternalReservationID != "" {
				linkedReservations[c.ExternalReservationID] = true
			}
		}
	}

	seenReservations := make(map[string]bool)
	seenClassRooms := make(map[string]bool)
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		switch c.Origin {
		case OriginReservation:
			if c.ID != "" {
				if linkedReservations[c.ID] || seenReservations[c.ID] {
					continue
				}
				seenReservations[c.ID] = true
			}
			if d.absorbedByLocal(c, locals) {
				continue
			}
		case OriginSchedule:
			key := scheduleKey(c)
			if seenClassRooms[key] {
				continue
			}
			seenClassRooms[key] = true
		}
		out = append(out, c)
	}
	return out
}

func (d *Deduplicator) absorbedByLocal(rsv Candidate, locals []Candidate) bool {
	if rsv.ResourceID == nil {
		return false
	}
	for _, local := range locals {
		if local.ResourceID == nil || *local.ResourceID != *rsv.ResourceID {
			continue
		}
		if intervalsMostlyOverlap(rsv, local, d.overlapFraction) {
			return true
		}
	}
	return false
}

// intervalsMostlyOverlap reports whether the shared span of the two
// candidates covers at least fraction of the shorter duration. An
// all-day candidate occupies the whole day.
func intervalsMostlyOverlap(a, b Candidate, fraction float64) bool {
	s1, e1, ok1 := effectiveInterval(a)
	s2, e2, ok2 := effectiveInterval(b)
	if !ok1 || !ok2 {
		return false
	}
	shared := min(e1, e2) - max(s1, s2)
	if shared <= 0 {
		return false
	}
	shorter := min(e1-s1, e2-s2)
	if shorter <= 0 {
		return false
	}
	return float64(shared) >= fraction*float64(shorter)
}

// effectiveInterval returns the occupied minute range, expanding
// all-day candidates to the full day.
func effectiveInterval(c Candidate) (start, end int, ok bool) {
	if c.AllDay {
		return 0, minutesPerDay, true
	}
	if !c.timed() {
		return 0, 0, false
	}
	return *c.Start, *c.End, true
}

func scheduleKey(c Candidate) string {
	key := c.ClassID + "|"
	if c.ResourceID != nil {
		key += strconv.FormatInt(*c.ResourceID, 10)
	}
	return key
}

// titleSimilar compares titles ignoring case and punctuation, matching
// by containment in either direction. Used only in the exclusion-hint
// path; it is too fuzzy to apply to arbitrary candidate pairs.
func titleSimilar(a, b string) bool {
	na, nb := normalizeTitle(a), normalizeTitle(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeTitle(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
