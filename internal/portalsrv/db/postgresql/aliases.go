package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
	"github.com/crestview/facilops/internal/portalsrv/db/dberror"
	"github.com/crestview/facilops/internal/portalsrv/db/models"
)

func (c *Conn) LookupAlias(ctx context.Context, kind models.AliasKind, value string) (*models.ResourceAlias, apperrors.Error) {
	query := `
		SELECT id, resource_id, kind, value, created_at
		FROM resource_aliases
		WHERE kind = $1 AND value = $2`

	var a models.ResourceAlias
	row := c.db.QueryRowContext(ctx, query, kind, value)
	errdb := row.Scan(&a.ID, &a.ResourceID, &a.Kind, &a.Value, &a.CreatedAt)
	if errdb != nil {
		if errdb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("alias not found")
		}
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to look up alias")
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return &a, nil
}

func (c *Conn) ListAliases(ctx context.Context, resourceID int64) ([]models.ResourceAlias, apperrors.Error) {
	query := `
		SELECT id, resource_id, kind, value, created_at
		FROM resource_aliases
		WHERE resource_id = $1
		ORDER BY kind, value`

	rows, errdb := c.db.QueryContext(ctx, query, resourceID)
	if errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to list aliases")
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	var out []models.ResourceAlias
	for rows.Next() {
		var a models.ResourceAlias
		if errdb := rows.Scan(&a.ID, &a.ResourceID, &a.Kind, &a.Value, &a.CreatedAt); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		out = append(out, a)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return out, nil
}

// UpsertAlias inserts or updates on the (kind, value) unique key. Safe
// under concurrent duplicate upserts; a unique-violation race is treated
// as success since the winning row carries the same mapping.
func (c *Conn) UpsertAlias(ctx context.Context, alias *models.ResourceAlias) apperrors.Error {
	if alias.Value == "" {
		return dberror.ErrInvalidInput.Msg("empty alias value")
	}
	query := `
		INSERT INTO resource_aliases (resource_id, kind, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, value) DO UPDATE SET resource_id = EXCLUDED.resource_id
		RETURNING id, created_at`

	row := c.db.QueryRowContext(ctx, query, alias.ResourceID, alias.Kind, alias.Value)
	errdb := row.Scan(&alias.ID, &alias.CreatedAt)
	if errdb != nil {
		var pgErr *pgconn.PgError
		if errors.As(errdb, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil
		}
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to upsert alias")
		return dberror.ErrDatabase.Err(errdb)
	}
	return nil
}

func (c *Conn) DeleteAlias(ctx context.Context, kind models.AliasKind, value string) apperrors.Error {
	res, errdb := c.db.ExecContext(ctx,
		`DELETE FROM resource_aliases WHERE kind = $1 AND value = $2`, kind, value)
	if errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to delete alias")
		return dberror.ErrDatabase.Err(errdb)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return dberror.ErrNotFound.Msg("alias not found")
	}
	return nil
}
