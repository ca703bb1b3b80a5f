package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func timedCandidate(origin Origin, id string, resourceID int64, start, end int) Candidate {
	return Candidate{
		Origin:     origin,
		ID:         id,
		ResourceID: int64Ptr(resourceID),
		Start:      minutePtr(start),
		End:        minutePtr(end),
	}
}

func TestDedupLinkedReservation(t *testing.T) {
	d := NewDeduplicator(0.8)
	local := timedCandidate(OriginLocal, "local-1", 1, 600, 660)
	local.ExternalReservationID = "rsv-42"
	// different times: the link alone folds the provider copy
	rsv := timedCandidate(OriginReservation, "rsv-42", 1, 0, 30)

	out := d.Dedup([]Candidate{local, rsv})
	assert.Len(t, out, 1)
	assert.Equal(t, OriginLocal, out[0].Origin)
}

func TestDedupOverlapThreshold(t *testing.T) {
	d := NewDeduplicator(0.8)
	local := timedCandidate(OriginLocal, "local-1", 1, 600, 700) // 100 min

	t.Run("at threshold absorbs", func(t *testing.T) {
		// 80 shared minutes of a 100-minute reservation
		rsv := timedCandidate(OriginReservation, "rsv-1", 1, 620, 720)
		out := d.Dedup([]Candidate{local, rsv})
		assert.Len(t, out, 1)
	})

	t.Run("below threshold survives", func(t *testing.T) {
		// 79 shared minutes
		rsv := timedCandidate(OriginReservation, "rsv-1", 1, 621, 721)
		out := d.Dedup([]Candidate{local, rsv})
		assert.Len(t, out, 2)
	})

	t.Run("fraction is of the shorter duration", func(t *testing.T) {
		// 30-minute reservation fully inside a 100-minute local event
		rsv := timedCandidate(OriginReservation, "rsv-1", 1, 610, 640)
		out := d.Dedup([]Candidate{local, rsv})
		assert.Len(t, out, 1)
	})

	t.Run("different resource never absorbed", func(t *testing.T) {
		rsv := timedCandidate(OriginReservation, "rsv-1", 2, 600, 700)
		out := d.Dedup([]Candidate{local, rsv})
		assert.Len(t, out, 2)
	})

	t.Run("all day local absorbs contained reservation", func(t *testing.T) {
		allDay := Candidate{Origin: OriginLocal, ID: "local-2", ResourceID: int64Ptr(1), AllDay: true}
		rsv := timedCandidate(OriginReservation, "rsv-1", 1, 610, 640)
		out := d.Dedup([]Candidate{allDay, rsv})
		assert.Len(t, out, 1)
	})
}

func TestDedupPagingDuplicates(t *testing.T) {
	d := NewDeduplicator(0.8)
	a := timedCandidate(OriginReservation, "rsv-1", 1, 600, 660)
	b := timedCandidate(OriginReservation, "rsv-1", 1, 600, 660)
	c := timedCandidate(OriginReservation, "rsv-2", 1, 900, 960)

	out := d.Dedup([]Candidate{a, b, c})
	assert.Len(t, out, 2)
}

func TestDedupSchedules(t *testing.T) {
	d := NewDeduplicator(0.8)
	s1 := timedCandidate(OriginSchedule, "sched-1", 1, 600, 660)
	s1.ClassID = "cls-1"
	s2 := timedCandidate(OriginSchedule, "sched-2", 1, 600, 660)
	s2.ClassID = "cls-1"
	s3 := timedCandidate(OriginSchedule, "sched-3", 2, 600, 660)
	s3.ClassID = "cls-1"

	t.Run("same class same room collapses", func(t *testing.T) {
		out := d.Dedup([]Candidate{s1, s2})
		assert.Len(t, out, 1)
	})

	t.Run("same class different room survives", func(t *testing.T) {
		out := d.Dedup([]Candidate{s1, s3})
		assert.Len(t, out, 2)
	})

	t.Run("schedules never folded into local events", func(t *testing.T) {
		local := timedCandidate(OriginLocal, "local-1", 1, 600, 660)
		out := d.Dedup([]Candidate{local, s1})
		assert.Len(t, out, 2)
	})
}

func TestTitleSimilar(t *testing.T) {
	assert.True(t, titleSimilar("Varsity Basketball", "varsity basketball"))
	assert.True(t, titleSimilar("Basketball: Varsity!", "basketballvarsity"))
	assert.True(t, titleSimilar("Board Meeting", "Meeting"))
	assert.False(t, titleSimilar("Board Meeting", "Chess Club"))
	assert.False(t, titleSimilar("", "anything"))
}
