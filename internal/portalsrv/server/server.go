// Package server assembles the portal HTTP server: middleware, CORS,
// and the API routes.
package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/httpx"
	"github.com/crestview/facilops/internal/common/logtrace"
	commonmiddleware "github.com/crestview/facilops/internal/common/middleware"
	"github.com/crestview/facilops/internal/portalsrv/apis"
	"github.com/crestview/facilops/internal/portalsrv/availability"
	"github.com/crestview/facilops/internal/portalsrv/config"
	"github.com/crestview/facilops/internal/portalsrv/db"
)

type PortalServer struct {
	Router *chi.Mux
	engine *availability.Engine
	store  db.Store
}

func CreateNewServer(store db.Store, providerAPI availability.ProviderAPI) (*PortalServer, error) {
	engineCfg := config.Config().Engine
	missing := availability.MissingMatchesAll
	if engineCfg.MissingPatternPolicy == "none" {
		missing = availability.MissingMatchesNone
	}
	engine := availability.NewEngine(store, providerAPI, engineCfg.PersistHeuristicAliases, availability.Options{
		MissingPattern:   missing,
		ProximityMinutes: engineCfg.ProximityMinutes,
		OverlapFraction:  engineCfg.DedupOverlapFraction,
		KeepUnresolved:   engineCfg.KeepUnresolved,
	})
	s := &PortalServer{
		Router: chi.NewRouter(),
		engine: engine,
		store:  store,
	}
	return s, nil
}

func (s *PortalServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(s.HandleCORS)
	}
	s.Router.Mount("/", apis.Router(s.engine, s.store))
	s.Router.Get("/version", s.getVersion)

	if logtrace.IsTraceEnabled() {
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			fmt.Printf("%s %s\n", method, route)
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			log.Error().Err(err).Msg("failed to walk routes")
		}
	}
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *PortalServer) getVersion(w http.ResponseWriter, r *http.Request) {
	rsp := &GetVersionRsp{
		ServerVersion: "Facilops Portal Server: 0.1.0",
		ApiVersion:    "v1",
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

func (s *PortalServer) HandleCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Length", "Accept-Encoding"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
