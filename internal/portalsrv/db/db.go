// Package db defines the store interfaces the portal consumes and the
// entry point for opening the Postgres-backed implementation. Interfaces
// are split per concern so callers (and tests) can depend on the narrow
// slice they need.
package db

import (
	"context"
	"time"

	"github.com/crestview/facilops/internal/common/apperrors"
	"github.com/crestview/facilops/internal/portalsrv/db/models"
	"github.com/crestview/facilops/internal/portalsrv/db/postgresql"
)

// ResourceStore exposes the resource catalog and the alias table.
type ResourceStore interface {
	ListResources(ctx context.Context) ([]models.Resource, apperrors.Error)
	GetResource(ctx context.Context, id int64) (*models.Resource, apperrors.Error)
	CreateResource(ctx context.Context, r *models.Resource) apperrors.Error

	LookupAlias(ctx context.Context, kind models.AliasKind, value string) (*models.ResourceAlias, apperrors.Error)
	ListAliases(ctx context.Context, resourceID int64) ([]models.ResourceAlias, apperrors.Error)
	UpsertAlias(ctx context.Context, alias *models.ResourceAlias) apperrors.Error
	DeleteAlias(ctx context.Context, kind models.AliasKind, value string) apperrors.Error
}

// EventStore exposes locally authored bookings for a date.
type EventStore interface {
	CreateEvent(ctx context.Context, e *models.Event) apperrors.Error
	ListEventsForDate(ctx context.Context, date time.Time, resourceIDs []int64) ([]models.Event, apperrors.Error)
	// ListUnlinkedEventsForDate returns non-cancelled events for the date
	// that carry no resource FK, so legacy free-text locations can be
	// matched by the caller.
	ListUnlinkedEventsForDate(ctx context.Context, date time.Time) ([]models.Event, apperrors.Error)
}

// Store is the full portal datastore surface.
type Store interface {
	ResourceStore
	EventStore
	Close() error
}

// Open connects to Postgres with the given DSN and verifies the
// connection.
func Open(dsn string) (Store, apperrors.Error) {
	return postgresql.Open(dsn)
}

var _ Store = (*postgresql.Conn)(nil)
