package availability

import (
	"fmt"
	"sort"
)

// sortCandidates orders candidates by effective start (all-day first),
// then title, so the classified lists are stable across runs.
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		si, _, oki := effectiveInterval(candidates[i])
		sj, _, okj := effectiveInterval(candidates[j])
		if !oki {
			si = -1
		}
		if !okj {
			sj = -1
		}
		if si != sj {
			return si < sj
		}
		return candidates[i].Title < candidates[j].Title
	})
}

// Note is the wire form of one classified candidate: a conflict, a
// possible conflict, a proximity warning, or an adjacency advisory.
type Note struct {
	Source      Origin `json:"source"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Explanation string `json:"explanation"`
}

// Outcome groups the classified candidates for one query.
type Outcome struct {
	Conflicts         []Note
	PossibleConflicts []Note
	Warnings          []Note
	Adjacent          []Note
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// Classify compares each candidate against the requested interval
// [reqStart, reqEnd) on the resolved target resource.
//
//   - target resource, known times, overlap        -> definite conflict
//   - target resource, missing start or end        -> possible conflict
//   - target resource, near miss within proximity  -> warning
//   - blocking sibling, overlap                    -> definite conflict
//     (the sibling physically occupies the target)
//   - adjacent sibling, overlap                    -> advisory
//   - unresolved resource (when kept by the engine)-> possible conflict
//
// All-day candidates occupy the entire day. Candidates on unrelated
// resources are ignored.
func Classify(resolution *Resolution, reqStart, reqEnd, proximityMinutes int, candidates []Candidate) Outcome {
	var out Outcome
	if resolution.TargetID == nil {
		return out
	}
	target := *resolution.TargetID
	sortCandidates(candidates)

	for _, c := range candidates {
		if c.ResourceID == nil {
			out.PossibleConflicts = append(out.PossibleConflicts,
				note(c, "resource could not be identified; verify manually"))
			continue
		}
		switch {
		case *c.ResourceID == target:
			out.classifyOnTarget(c, reqStart, reqEnd, proximityMinutes)
		default:
			kind, related := resolution.siblingKind(*c.ResourceID)
			if !related {
				continue
			}
			out.classifySibling(c, kind, siblingName(resolution, *c.ResourceID), reqStart, reqEnd)
		}
	}

	return out
}

func (out *Outcome) classifyOnTarget(c Candidate, reqStart, reqEnd, proximityMinutes int) {
	if c.AllDay {
		out.Conflicts = append(out.Conflicts, note(c, "all-day booking occupies the space"))
		return
	}
	if !c.timed() {
		out.PossibleConflicts = append(out.PossibleConflicts,
			note(c, "booking has no comparable time; verify manually"))
		return
	}
	s, e := *c.Start, *c.End
	if Overlaps(s, e, reqStart, reqEnd) {
		out.Conflicts = append(out.Conflicts,
			note(c, fmt.Sprintf("overlaps the requested %s-%s slot", FormatClock(reqStart), FormatClock(reqEnd))))
		return
	}
	gapBefore := reqStart - e
	gapAfter := s - reqEnd
	if gapBefore >= 0 && gapBefore <= proximityMinutes {
		out.Warnings = append(out.Warnings,
			note(c, fmt.Sprintf("ends only %d minutes before the requested slot", gapBefore)))
	} else if gapAfter >= 0 && gapAfter <= proximityMinutes {
		out.Warnings = append(out.Warnings,
			note(c, fmt.Sprintf("starts only %d minutes after the requested slot", gapAfter)))
	}
}

func (out *Outcome) classifySibling(c Candidate, kind SiblingKind, siblingName string, reqStart, reqEnd int) {
	s, e, ok := effectiveInterval(c)
	switch kind {
	case SiblingBlocking:
		if !ok {
			out.PossibleConflicts = append(out.PossibleConflicts,
				note(c, fmt.Sprintf("booking in %s has no comparable time; it would occupy this space", siblingName)))
			return
		}
		if Overlaps(s, e, reqStart, reqEnd) {
			out.Conflicts = append(out.Conflicts,
				note(c, fmt.Sprintf("booked via %s, which occupies this space", siblingName)))
		}
	case SiblingAdjacent:
		if ok && Overlaps(s, e, reqStart, reqEnd) {
			out.Adjacent = append(out.Adjacent,
				note(c, fmt.Sprintf("adjacent space %s is in use at the same time", siblingName)))
		}
	}
}

func note(c Candidate, explanation string) Note {
	n := Note{
		Source:      c.Origin,
		Title:       c.Title,
		Explanation: explanation,
	}
	switch {
	case c.AllDay:
		n.Start, n.End = "All day", "All day"
	default:
		n.Start, n.End = clockDisplay(c.Start), clockDisplay(c.End)
	}
	return n
}

func clockDisplay(minute *int) string {
	if minute == nil {
		return "unknown"
	}
	return FormatClock(*minute)
}

func siblingName(resolution *Resolution, resourceID int64) string {
	for _, s := range resolution.Siblings {
		if s.ResourceID == resourceID {
			return s.Name
		}
	}
	return "related space"
}
