package availability

import "time"

// Origin identifies which source produced a candidate booking.
type Origin string

const (
	OriginLocal       Origin = "local_event"
	OriginReservation Origin = "external_reservation"
	OriginSchedule    Origin = "class_schedule"
)

// Candidate is the normalized shape every source adapter produces: a
// potential occupancy of a resource on one date, before deduplication
// and classification. Start/End are minutes of day; both nil means
// all-day or unknown. ResourceID is nil when the booking's resource
// reference could not be resolved.
type Candidate struct {
	Origin     Origin
	ID         string
	Title      string
	Date       time.Time
	Start      *int
	End        *int
	AllDay     bool
	ResourceID *int64
	// DayPattern is the recurrence pattern, recurring sources only.
	DayPattern string
	// ExternalReservationID is set on local events that were pushed to
	// the provider; the deduplicator uses it to fold the provider copy.
	ExternalReservationID string
	// ClassID is set on schedule candidates for same-class dedup.
	ClassID string
}

// timed reports whether both endpoints are known and usable.
func (c *Candidate) timed() bool {
	return c.Start != nil && c.End != nil
}

// wellFormed reports whether a timed candidate has start <= end.
// Malformed candidates are discarded by adapters, not clamped.
func (c *Candidate) wellFormed() bool {
	if !c.timed() {
		return true
	}
	return *c.Start <= *c.End
}

func minutePtr(m int) *int { return &m }
