package availability

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
	"github.com/crestview/facilops/internal/portalsrv/provider"
)

// ScheduleAPI is the provider surface the class-schedule adapter needs.
type ScheduleAPI interface {
	ListClassSchedules(ctx context.Context) ([]provider.ClassSchedule, apperrors.Error)
	ListClasses(ctx context.Context) ([]provider.Class, apperrors.Error)
}

// placeholder room descriptions the registrar uses for unassigned
// meetings
var placeholderRooms = map[string]bool{
	"tba": true, "tbd": true, "unassigned": true, "none": true, "-": true,
}

// ClassScheduleAdapter fetches the provider-wide recurring schedule
// catalog, joins it to the active/future class catalog, and keeps only
// the meetings that occur on the target date's weekday.
type ClassScheduleAdapter struct {
	api            ScheduleAPI
	resolver       *Resolver
	missingPattern MissingPatternPolicy
}

func NewClassScheduleAdapter(api ScheduleAPI, resolver *Resolver, missingPattern MissingPatternPolicy) *ClassScheduleAdapter {
	return &ClassScheduleAdapter{api: api, resolver: resolver, missingPattern: missingPattern}
}

func (a *ClassScheduleAdapter) Fetch(ctx context.Context, date time.Time, _ []ScopeResource) ([]Candidate, apperrors.Error) {
	schedules, err := a.api.ListClassSchedules(ctx)
	if err != nil {
		return nil, err
	}
	classes, err := a.api.ListClasses(ctx)
	if err != nil {
		return nil, err
	}

	classByID := make(map[string]provider.Class, len(classes))
	for _, cl := range classes {
		classByID[cl.ID] = cl
	}

	weekday := date.Weekday()
	var out []Candidate
	for _, sched := range schedules {
		class, ok := classByID[sched.ClassID]
		if !ok || !classRunning(class) {
			continue
		}
		if !roomAssigned(sched.Room) {
			continue
		}
		if !DayMatches(sched.Days, weekday, a.missingPattern) {
			continue
		}
		c := Candidate{
			Origin:     OriginSchedule,
			ID:         sched.ID,
			Title:      class.Name,
			Date:       date,
			DayPattern: sched.Days,
			ClassID:    sched.ClassID,
		}
		if m, ok := ParseClock(sched.StartTime); ok {
			c.Start = minutePtr(m)
		}
		if m, ok := ParseClock(sched.EndTime); ok {
			c.End = minutePtr(m)
		}
		if !c.wellFormed() {
			log.Ctx(ctx).Warn().Str("schedule", sched.ID).Msg("discarding schedule with inverted time range")
			continue
		}
		c.ResourceID = a.resolveRoom(ctx, sched.Room)
		out = append(out, c)
	}
	return out, nil
}

func classRunning(class provider.Class) bool {
	switch class.Status {
	case provider.ClassStatusActive, provider.ClassStatusFuture:
		return true
	}
	return false
}

func roomAssigned(room *provider.Room) bool {
	if room == nil {
		return false
	}
	desc := strings.ToLower(strings.TrimSpace(room.Description))
	if desc == "" && room.ForeignID == nil {
		return false
	}
	return !placeholderRooms[desc]
}

func (a *ClassScheduleAdapter) resolveRoom(ctx context.Context, room *provider.Room) *int64 {
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
