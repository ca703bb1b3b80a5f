package models

import "time"

// Event is a locally authored booking. Start/End are minutes of day and
// are nil for all-day events. ResourceID is nil for legacy rows that
// only carry a free-text location. ExternalReservationID is set when the
// event was pushed into (or imported from) the external scheduling
// provider.
type Event struct {
	ID                    int64     `db:"id"`
	Title                 string    `db:"title"`
	Date                  time.Time `db:"event_date"`
	StartMinute           *int      `db:"start_minute"`
	EndMinute             *int      `db:"end_minute"`
	AllDay                bool      `db:"all_day"`
	Cancelled             bool      `db:"cancelled"`
	Location              string    `db:"location"`
	ResourceID            *int64    `db:"resource_id"`
	ExternalReservationID *string   `db:"external_reservation_id"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}
