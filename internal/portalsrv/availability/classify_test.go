package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolution() *Resolution {
	return &Resolution{
		TargetID:   int64Ptr(1),
		TargetName: "Commons",
		Siblings: []Sibling{
			{ResourceID: 2, Name: "Commons Side 1", Kind: SiblingBlocking},
			{ResourceID: 3, Name: "Cafeteria", Kind: SiblingAdjacent},
		},
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(600, 660, 630, 690))
	assert.True(t, Overlaps(600, 660, 500, 700))
	assert.False(t, Overlaps(600, 660, 660, 720), "touching endpoints do not overlap")
	assert.False(t, Overlaps(600, 660, 540, 600), "touching endpoints do not overlap")
	assert.False(t, Overlaps(600, 660, 700, 760))
}

func TestClassifyOnTarget(t *testing.T) {
	// requested slot: 10:00-11:00
	reqStart, reqEnd := 600, 660

	t.Run("overlap is a definite conflict", func(t *testing.T) {
		c := timedCandidate(OriginReservation, "r1", 1, 630, 690)
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		require.Len(t, out.Conflicts, 1)
		assert.Empty(t, out.PossibleConflicts)
		assert.Empty(t, out.Warnings)
	})

	t.Run("all day booking is a definite conflict", func(t *testing.T) {
		c := Candidate{Origin: OriginLocal, ID: "l1", ResourceID: int64Ptr(1), AllDay: true}
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		require.Len(t, out.Conflicts, 1)
		assert.Equal(t, "All day", out.Conflicts[0].Start)
	})

	t.Run("missing time is a possible conflict", func(t *testing.T) {
		c := Candidate{Origin: OriginReservation, ID: "r1", ResourceID: int64Ptr(1), Start: minutePtr(600)}
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		assert.Empty(t, out.Conflicts)
		require.Len(t, out.PossibleConflicts, 1)
	})

	t.Run("near miss inside proximity window warns", func(t *testing.T) {
		before := timedCandidate(OriginLocal, "l1", 1, 500, 590) // ends 10 min before
		after := timedCandidate(OriginLocal, "l2", 1, 670, 730)  // starts 10 min after
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{before, after})
		assert.Empty(t, out.Conflicts)
		require.Len(t, out.Warnings, 2)
	})

	t.Run("gap beyond proximity window is silent", func(t *testing.T) {
		c := timedCandidate(OriginLocal, "l1", 1, 400, 500)
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		assert.Empty(t, out.Conflicts)
		assert.Empty(t, out.Warnings)
	})

	t.Run("back to back is a warning at zero gap", func(t *testing.T) {
		c := timedCandidate(OriginLocal, "l1", 1, 540, 600)
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		assert.Empty(t, out.Conflicts)
		require.Len(t, out.Warnings, 1)
	})
}

func TestClassifySiblings(t *testing.T) {
	reqStart, reqEnd := 600, 660

	t.Run("blocking sibling overlap is a definite conflict", func(t *testing.T) {
		c := timedCandidate(OriginReservation, "r1", 2, 630, 690)
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		require.Len(t, out.Conflicts, 1)
		assert.Contains(t, out.Conflicts[0].Explanation, "Commons Side 1")
	})

	t.Run("blocking sibling without times is a possible conflict", func(t *testing.T) {
		c := Candidate{Origin: OriginReservation, ID: "r1", ResourceID: int64Ptr(2)}
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		assert.Empty(t, out.Conflicts)
		require.Len(t, out.PossibleConflicts, 1)
	})

	t.Run("adjacent sibling overlap is an advisory", func(t *testing.T) {
		c := timedCandidate(OriginSchedule, "s1", 3, 630, 690)
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		assert.Empty(t, out.Conflicts)
		require.Len(t, out.Adjacent, 1)
	})

	t.Run("adjacent sibling outside the slot is silent", func(t *testing.T) {
		c := timedCandidate(OriginSchedule, "s1", 3, 700, 760)
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		assert.Empty(t, out.Adjacent)
	})

	t.Run("unrelated resource is ignored", func(t *testing.T) {
		c := timedCandidate(OriginReservation, "r1", 99, 600, 660)
		out := Classify(testResolution(), reqStart, reqEnd, 15, []Candidate{c})
		assert.Empty(t, out.Conflicts)
		assert.Empty(t, out.PossibleConflicts)
		assert.Empty(t, out.Warnings)
		assert.Empty(t, out.Adjacent)
	})
}

func TestClassifyUnresolvedCandidate(t *testing.T) {
	c := Candidate{Origin: OriginLocal, ID: "l1", Title: "Mystery booking", Start: minutePtr(600), End: minutePtr(660)}
	out := Classify(testResolution(), 600, 660, 15, []Candidate{c})
	assert.Empty(t, out.Conflicts)
	require.Len(t, out.PossibleConflicts, 1)
	assert.Contains(t, out.PossibleConflicts[0].Explanation, "could not be identified")
}

func TestClassifyOrderIsStable(t *testing.T) {
	late := timedCandidate(OriginLocal, "l1", 1, 640, 700)
	late.Title = "Late"
	early := timedCandidate(OriginLocal, "l2", 1, 610, 650)
	early.Title = "Early"

	out := Classify(testResolution(), 600, 660, 15, []Candidate{late, early})
	require.Len(t, out.Conflicts, 2)
	assert.Equal(t, "Early", out.Conflicts[0].Title)
	assert.Equal(t, "Late", out.Conflicts[1].Title)
}
