// Package postgresql implements the portal datastore on PostgreSQL via
// the pgx stdlib driver.
//
// Expected schema:
//
//	resources        (id bigserial PK, name text, code text, category text,
//	                  capacity int NULL, created_at, updated_at)
//	resource_aliases (id bigserial PK, resource_id bigint FK, kind text,
//	                  value text, created_at, UNIQUE (kind, value))
//	events           (id bigserial PK, title text, event_date date,
//	                  start_minute int NULL, end_minute int NULL,
//	                  all_day bool, cancelled bool, location text,
//	                  resource_id bigint NULL FK,
//	                  external_reservation_id text NULL,
//	                  created_at, updated_at)
package postgresql

import (
	"database/sql"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
	"github.com/crestview/facilops/internal/portalsrv/db/dberror"
)

// Conn wraps the connection pool.
type Conn struct {
	db *sql.DB
}

// Open opens a pooled connection with the given DSN and pings it.
func Open(dsn string) (*Conn, apperrors.Error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Error().Err(err).Msg("failed to open db")
		return nil, dberror.ErrDatabase.Err(err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Error().Err(err).Msg("failed to ping db")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &Conn{db: sqlDB}, nil
}

func (c *Conn) Close() error {
	return c.db.Close()
}
