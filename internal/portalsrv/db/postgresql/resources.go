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

const pgUniqueViolation = "23505"

func (c *Conn) ListResources(ctx context.Context) ([]models.Resource, apperrors.Error) {
	query := `
		SELECT id, name, code, category, capacity, created_at, updated_at
		FROM resources
		ORDER BY name`

	rows, errdb := c.db.QueryContext(ctx, query)
	if errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to list resources")
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	var out []models.Resource
	for rows.Next() {
		var r models.Resource
		if errdb := rows.Scan(&r.ID, &r.Name, &r.Code, &r.Category, &r.Capacity, &r.CreatedAt, &r.UpdatedAt); errdb != nil {
			log.Ctx(ctx).Error().Err(errdb).Msg("failed to scan resource")
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		out = append(out, r)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return out, nil
}

func (c *Conn) GetResource(ctx context.Context, id int64) (*models.Resource, apperrors.Error) {
	query := `
		SELECT id, name, code, category, capacity, created_at, updated_at
		FROM resources
		WHERE id = $1`

	var r models.Resource
	row := c.db.QueryRowContext(ctx, query, id)
	errdb := row.Scan(&r.ID, &r.Name, &r.Code, &r.Category, &r.Capacity, &r.CreatedAt, &r.UpdatedAt)
	if errdb != nil {
		if errdb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("resource not found")
		}
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to get resource")
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return &r, nil
}

func (c *Conn) CreateResource(ctx context.Context, r *models.Resource) apperrors.Error {
	query := `
		INSERT INTO resources (name, code, category, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	row := c.db.QueryRowContext(ctx, query, r.Name, r.Code, r.Category, r.Capacity)
	errdb := row.Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if errdb != nil {
		var pgErr *pgconn.PgError
		if errors.As(errdb, &pgErr) && pgErr.Code == pgUniqueViolation {
			return dberror.ErrAlreadyExists.Msg("resource already exists")
		}
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to create resource")
		return dberror.ErrDatabase.Err(errdb)
	}
	return nil
}
