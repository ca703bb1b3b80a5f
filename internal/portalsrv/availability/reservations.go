package availability

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
	"github.com/crestview/facilops/internal/portalsrv/provider"
)

// ReservationAPI is the provider surface the reservation adapter needs.
type ReservationAPI interface {
	ListReservations(ctx context.Context, date time.Time) ([]provider.Reservation, apperrors.Error)
}

// ReservationAdapter fetches ad-hoc reservations from the external
// provider and resolves their room identity into local resource IDs.
// Reservations that duplicate a local event are NOT excluded here; the
// deduplicator owns that rule.
type ReservationAdapter struct {
	api      ReservationAPI
	resolver *Resolver
}

func NewReservationAdapter(api ReservationAPI, resolver *Resolver) *ReservationAdapter {
	return &ReservationAdapter{api: api, resolver: resolver}
}

func (a *ReservationAdapter) Fetch(ctx context.Context, date time.Time, _ []ScopeResource) ([]Candidate, apperrors.Error) {
	reservations, err := a.api.ListReservations(ctx, date)
	if err != nil {
		return nil, err
	}

	var out []Candidate
	for _, rsv := range reservations {
		c := Candidate{
			Origin: OriginReservation,
			ID:     rsv.ID,
			Title:  rsv.EventName,
			Date:   date,
		}
		if m, ok := ParseClock(rsv.StartDT); ok {
			c.Start = minutePtr(m)
		}
		if m, ok := ParseClock(rsv.EndDT); ok {
			c.End = minutePtr(m)
		}
		if !c.wellFormed() {
			log.Ctx(ctx).Warn().Str("reservation", rsv.ID).Msg("discarding reservation with inverted time range")
			continue
		}
		c.ResourceID = a.resolveRoom(ctx, rsv.Room)
		out = append(out, c)
	}
	return out, nil
}

// resolveRoom maps the provider's nested room object to a local
// resource ID, nil when unresolved. Unresolved candidates stay in the
// output; the engine decides whether to keep them.
func (a *ReservationAdapter) resolveRoom(ctx context.Context, room *provider.Room) *int64 {
	if room == nil {
		return nil
	}
	resolution, err := a.resolver.Resolve(ctx, Reference{
		Name:      room.Description,
		Code:      room.Abbreviation,
		ForeignID: room.ForeignID,
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("room", room.Description).Msg("room resolution failed")
		return nil
	}
	return resolution.TargetID
}
