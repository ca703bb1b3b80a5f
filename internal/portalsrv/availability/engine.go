package availability

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
)

// Request is the transport-agnostic availability query.
type Request struct {
	ResourceReference string `json:"resourceReference" validate:"required"`
	ResourceForeignID *int64 `json:"resourceForeignId,omitempty"`
	Date              string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime         string `json:"startTime" validate:"required"`
	EndTime           string `json:"endTime" validate:"required"`
	ExcludeBookingID  string `json:"excludeBookingId,omitempty"`
	ExcludeTitle      string `json:"excludeTitle,omitempty"`
}

// Result is the engine's answer. Available is true iff the definite
// conflict list is empty and the resource resolved; possible conflicts
// and warnings never affect it.
type Result struct {
	Available          bool     `json:"available"`
	ResourceUnresolved bool     `json:"resourceUnresolved,omitempty"`
	ResourceID         *int64   `json:"resourceId,omitempty"`
	ResourceName       string   `json:"resourceName,omitempty"`
	Conflicts          []Note   `json:"conflicts"`
	PossibleConflicts  []Note   `json:"possibleConflicts"`
	Warnings           []Note   `json:"warnings"`
	Adjacent           []Note   `json:"adjacent"`
	FailedSources      []Origin `json:"failedSources,omitempty"`
}

// sourceAdapter is the uniform shape of the three source adapters.
type sourceAdapter interface {
	Fetch(ctx context.Context, date time.Time, scope []ScopeResource) ([]Candidate, apperrors.Error)
}

// Options carries the engine policy knobs; zero values get the
// documented defaults.
type Options struct {
	MissingPattern   MissingPatternPolicy
	ProximityMinutes int
	OverlapFraction  float64
	// KeepUnresolved keeps candidates whose resource could not be
	// attributed instead of discarding them; they surface as possible
	// conflicts.
	KeepUnresolved bool
}

// Engine composes resolver, adapters, deduplicator, and classifier
// into one availability query. It holds no per-query state; one engine
// serves concurrent queries.
type Engine struct {
	resolver     *Resolver
	local        sourceAdapter
	reservations sourceAdapter
	schedules    sourceAdapter
	dedup        *Deduplicator
	opts         Options
}

// Store is the datastore surface the engine consumes.
type Store interface {
	ResourceStore
	EventStore
}

// ProviderAPI is the external scheduling provider surface the engine
// consumes.
type ProviderAPI interface {
	ReservationAPI
	ScheduleAPI
}

func NewEngine(store Store, api ProviderAPI, persistHeuristicAliases bool, opts Options) *Engine {
	if opts.ProximityMinutes <= 0 {
		opts.ProximityMinutes = 15
	}
	resolver := NewResolver(store, persistHeuristicAliases)
	return &Engine{
		resolver:     resolver,
		local:        NewLocalEventAdapter(store),
		reservations: NewReservationAdapter(api, resolver),
		schedules:    NewClassScheduleAdapter(api, resolver, opts.MissingPattern),
		dedup:        NewDeduplicator(opts.OverlapFraction),
		opts:         opts,
	}
}

// CheckAvailability answers whether the referenced resource is free in
// the requested slot. Input errors reject the query before any I/O; a
// failed source degrades the answer instead of failing it; an
// unresolved resource is reported explicitly and never defaults to
// "available".
func (e *Engine) CheckAvailability(ctx context.Context, req Request) (*Result, apperrors.Error) {
	date, reqStart, reqEnd, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	resolution, err := e.resolver.Resolve(ctx, Reference{
		Name:      req.ResourceReference,
		ForeignID: req.ResourceForeignID,
	})
	if err != nil {
		return nil, err
	}
	if resolution.TargetID == nil {
		log.Ctx(ctx).Info().Str("reference", req.ResourceReference).Msg("resource reference did not resolve")
		return &Result{
			Available:          false,
			ResourceUnresolved: true,
			Conflicts:          []Note{},
			PossibleConflicts:  []Note{},
			Warnings:           []Note{},
			Adjacent:           []Note{},
		}, nil
	}

	scope := buildScope(resolution)
	candidates, failed := e.fetchAll(ctx, date, scope)
	candidates = applyExclusion(ctx, candidates, req.ExcludeBookingID, req.ExcludeTitle)
	if !e.opts.KeepUnresolved {
		candidates = dropUnresolved(candidates)
	}
	candidates = e.dedup.Dedup(candidates)

	outcome := Classify(resolution, reqStart, reqEnd, e.opts.ProximityMinutes, candidates)
	return &Result{
		Available:         len(outcome.Conflicts) == 0,
		ResourceID:        resolution.TargetID,
		ResourceName:      resolution.TargetName,
		Conflicts:         notNil(outcome.Conflicts),
		PossibleConflicts: notNil(outcome.PossibleConflicts),
		Warnings:          notNil(outcome.Warnings),
		Adjacent:          notNil(outcome.Adjacent),
		FailedSources:     failed,
	}, nil
}

func validateRequest(req Request) (date time.Time, start, end int, err apperrors.Error) {
	if req.ResourceReference == "" && req.ResourceForeignID == nil {
		return time.Time{}, 0, 0, ErrMissingReference
	}
	date, perr := time.Parse("2006-01-02", req.Date)
	if perr != nil {
		return time.Time{}, 0, 0, ErrBadDate
	}
	start, ok := ParseClock(req.StartTime)
	if !ok {
		return time.Time{}, 0, 0, ErrBadStartTime
	}
	end, ok = ParseClock(req.EndTime)
	if !ok {
		return time.Time{}, 0, 0, ErrBadEndTime
	}
	if start >= end {
		return time.Time{}, 0, 0, ErrInvertedInterval
	}
	return date, start, end, nil
}

func buildScope(resolution *Resolution) []ScopeResource {
	scope := []ScopeResource{{
		ID:   *resolution.TargetID,
		Name: resolution.TargetName,
		Code: resolution.TargetCode,
	}}
	for _, s := range resolution.Siblings {
		scope = append(scope, ScopeResource{ID: s.ResourceID, Name: s.Name, Code: s.Code})
	}
	return scope
}

// fetchAll queries the three adapters concurrently. Each is
// independently fallible: a failure empties that source's contribution
// and is reported, never fatal.
func (e *Engine) fetchAll(ctx context.Context, date time.Time, scope []ScopeResource) ([]Candidate, []Origin) {
	type fetchResult struct {
		origin     Origin
		candidates []Candidate
		err        apperrors.Error
	}
	adapters := []struct {
		origin  Origin
		adapter sourceAdapter
	}{
		{OriginLocal, e.local},
		{OriginReservation, e.reservations},
		{OriginSchedule, e.schedules},
	}

	results := make([]fetchResult, len(adapters))
	var wg sync.WaitGroup
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, origin Origin, adapter sourceAdapter) {
			defer wg.Done()
			candidates, err := adapter.Fetch(ctx, date, scope)
			results[i] = fetchResult{origin: origin, candidates: candidates, err: err}
		}(i, a.origin, a.adapter)
	}
	wg.Wait()

	var candidates []Candidate
	var failed []Origin
	for _, r := range results {
		if r.err != nil {
			log.Ctx(ctx).Error().Err(r.err).Str("source", string(r.origin)).Msg("source fetch failed, degrading")
			failed = append(failed, r.origin)
			continue
		}
		candidates = append(candidates, r.candidates...)
	}
	return candidates, failed
}

// applyExclusion removes the booking being edited from the candidate
// set: by identifier against both local and external IDs first, then
// by title similarity as an opt-in fallback. Exclusion runs before
// dedup, so when the excluded candidate was pushed to the provider its
// reservation copy must be dropped here too; otherwise the copy
// survives and the edited booking conflicts with itself.
func applyExclusion(ctx context.Context, candidates []Candidate, excludeID, excludeTitle string) []Candidate {
	if excludeID == "" && excludeTitle == "" {
		return candidates
	}
	linkedCopies := make(map[string]bool)
	if excludeID != "" {
		for _, c := range candidates {
			if c.ID == excludeID && c.ExternalReservationID != "" {
				linkedCopies[c.ExternalReservationID] = true
			}
		}
	}
	titleDrops := 0
	out := candidates[:0]
	for _, c := range candidates {
		if excludeID != "" && (c.ID == excludeID || c.ExternalReservationID == excludeID) {
			continue
		}
		if c.Origin == OriginReservation && linkedCopies[c.ID] {
			continue
		}
		if excludeTitle != "" && titleSimilar(c.Title, excludeTitle) {
			titleDrops++
			continue
		}
		out = append(out, c)
	}
	// title similarity is fuzzy; more than one drop on the same date
	// deserves a trace
	if titleDrops > 1 {
		log.Ctx(ctx).Warn().Int("dropped", titleDrops).Str("title", excludeTitle).
			Msg("title exclusion removed multiple bookings")
	}
	return out
}

func dropUnresolved(candidates []Candidate) []Candidate {
	out := candidates[:0]
	for _, c := range candidates {
		if c.ResourceID == nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

func notNil(notes []Note) []Note {
	if notes == nil {
		return []Note{}
	}
	return notes
}
