package availability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
	"github.com/crestview/facilops/internal/portalsrv/db/models"
)

// EventStore is the slice of the datastore the local adapter needs.
type EventStore interface {
	ListEventsForDate(ctx context.Context, date time.Time, resourceIDs []int64) ([]models.Event, apperrors.Error)
	ListUnlinkedEventsForDate(ctx context.Context, date time.Time) ([]models.Event, apperrors.Error)
}

// ScopeResource identifies one resource the query cares about: the
// target or one of its siblings.
type ScopeResource struct {
	ID   int64
	Name string
	Code string
}

// LocalEventAdapter reads authored bookings from the portal datastore.
type LocalEventAdapter struct {
	store EventStore
}

func NewLocalEventAdapter(store EventStore) *LocalEventAdapter {
	return &LocalEventAdapter{store: store}
}

// Fetch returns candidates for the date: events linked to an in-scope
// resource by FK, plus legacy rows with no FK whose free-text location
// matches an in-scope resource name or code by substring containment in
// either direction. Unmatched legacy rows are returned unresolved; the
// engine decides whether to keep them.
func (a *LocalEventAdapter) Fetch(ctx context.Context, date time.Time, scope []ScopeResource) ([]Candidate, apperrors.Error) {
	ids := make([]int64, 0, len(scope))
	for _, s := range scope {
		ids = append(ids, s.ID)
	}
	linked, err := a.store.ListEventsForDate(ctx, date, ids)
	if err != nil {
		return nil, err
	}
	unlinked, err := a.store.ListUnlinkedEventsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	var out []Candidate
	for _, e := range linked {
		if c, ok := localCandidate(ctx, e, e.ResourceID); ok {
			out = append(out, c)
		}
	}
	for _, e := range unlinked {
		resourceID := matchLocation(e.Location, scope)
		if c, ok := localCandidate(ctx, e, resourceID); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func localCandidate(ctx context.Context, e models.Event, resourceID *int64) (Candidate, bool) {
	c := Candidate{
		Origin:     OriginLocal,
		ID:         "local-" + strconv.FormatInt(e.ID, 10),
		Title:      e.Title,
		Date:       e.Date,
		ResourceID: resourceID,
	}
	if e.ExternalReservationID != nil {
		c.ExternalReservationID = *e.ExternalReservationID
	}
	if e.AllDay || (e.StartMinute == nil && e.EndMinute == nil) {
		c.AllDay = true
		return c, true
	}
	c.Start = e.StartMinute
	c.End = e.EndMinute
	if !c.wellFormed() {
		log.Ctx(ctx).Warn().Str("candidate", c.ID).Msg("discarding event with inverted time range")
		return Candidate{}, false
	}
	return c, true
}

// matchLocation attributes a legacy free-text location to an in-scope
// resource when either string contains the other.
func matchLocation(location string, scope []ScopeResource) *int64 {
	loc := normalizeName(location)
	if loc == "" {
		return nil
	}
	for _, s := range scope {
		for _, candidate := range []string{normalizeName(s.Name), normalizeName(s.Code)} {
			if candidate == "" {
				continue
			}
			if strings.Contains(loc, candidate) || strings.Contains(candidate, loc) {
				id := s.ID
				return &id
			}
		}
	}
	return nil
}
