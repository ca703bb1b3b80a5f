// Package apis mounts the portal's HTTP handlers: the availability
// check plus the thin resource/alias administration routes that feed
// the resolver.
package apis

import (
	"github.com/go-chi/chi/v5"

	"github.com/crestview/facilops/internal/common/httpx"
	"github.com/crestview/facilops/internal/portalsrv/availability"
	"github.com/crestview/facilops/internal/portalsrv/db"
)

type handler struct {
	engine *availability.Engine
	store  db.Store
}

// Router returns the API routes backed by the given engine and store.
func Router(engine *availability.Engine, store db.Store) chi.Router {
	h := &handler{engine: engine, store: store}
	r := chi.NewRouter()
	r.Post("/availability/check", httpx.WrapHttpRsp(h.checkAvailability))
	r.Get("/resources", httpx.WrapHttpRsp(h.listResources))
	r.Post("/resources", httpx.WrapHttpRsp(h.createResource))
	r.Get("/resources/{resourceID}", httpx.WrapHttpRsp(h.getResource))
	r.Get("/resources/{resourceID}/aliases", httpx.WrapHttpRsp(h.listAliases))
	r.Post("/events", httpx.WrapHttpRsp(h.createEvent))
	r.Post("/aliases", httpx.WrapHttpRsp(h.upsertAlias))
	r.Delete("/aliases", httpx.WrapHttpRsp(h.deleteAlias))
	return r
}
