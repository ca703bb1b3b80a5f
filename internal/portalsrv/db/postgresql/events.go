package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
	"github.com/crestview/facilops/internal/portalsrv/db/dberror"
	"github.com/crestview/facilops/internal/portalsrv/db/models"
)

const eventColumns = `id, title, event_date, start_minute, end_minute, all_day,
	cancelled, location, resource_id, external_reservation_id, created_at, updated_at`

func (c *Conn) CreateEvent(ctx context.Context, e *models.Event) apperrors.Error {
	query := `
		INSERT INTO events (title, event_date, start_minute, end_minute, all_day,
			cancelled, location, resource_id, external_reservation_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	row := c.db.QueryRowContext(ctx, query,
		e.Title, e.Date, e.StartMinute, e.EndMinute, e.AllDay,
		e.Cancelled, e.Location, e.ResourceID, e.ExternalReservationID)
	if errdb := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to create event")
		return dberror.ErrDatabase.Err(errdb)
	}
	return nil
}

// ListEventsForDate returns non-cancelled events on the date linked to
// any of the given resources.
func (c *Conn) ListEventsForDate(ctx context.Context, date time.Time, resourceIDs []int64) ([]models.Event, apperrors.Error) {
	if len(resourceIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(resourceIDs))
	args := []any{date}
	for i, id := range resourceIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE event_date = $1 AND cancelled = false AND resource_id IN (%s)
		ORDER BY start_minute NULLS FIRST, id`,
		eventColumns, strings.Join(placeholders, ", "))

	return c.queryEvents(ctx, query, args...)
}

func (c *Conn) ListUnlinkedEventsForDate(ctx context.Context, date time.Time) ([]models.Event, apperrors.Error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE event_date = $1 AND cancelled = false AND resource_id IS NULL
		ORDER BY start_minute NULLS FIRST, id`, eventColumns)

	return c.queryEvents(ctx, query, date)
}

func (c *Conn) queryEvents(ctx context.Context, query string, args ...any) ([]models.Event, apperrors.Error) {
	rows, errdb := c.db.QueryContext(ctx, query, args...)
	if errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to query events")
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		var e models.Event
		if errdb := rows.Scan(&e.ID, &e.Title, &e.Date, &e.StartMinute, &e.EndMinute,
			&e.AllDay, &e.Cancelled, &e.Location, &e.ResourceID,
			&e.ExternalReservationID, &e.CreatedAt, &e.UpdatedAt); errdb != nil {
			log.Ctx(ctx).Error().Err(errdb).Msg("failed to scan event")
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		out = append(out, e)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return out, nil
}
