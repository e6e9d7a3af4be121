// cmd/server/server.go
package main

import (
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/themeapi/internal/api"
	"github.com/codr1/themeapi/internal/api/apiutil"
	fontsapi "github.com/codr1/themeapi/internal/api/fonts"
	"github.com/codr1/themeapi/internal/api/health"
	"github.com/codr1/themeapi/internal/api/themes"
	"github.com/codr1/themeapi/internal/config"
	"github.com/codr1/themeapi/internal/fonts"
	"github.com/codr1/themeapi/internal/themestore"
)

type endpoint struct {
	Method      string
	Path        string
	Description string
}

var endpoints = []endpoint{
	{http.MethodGet, "/api/themes", "List all themes"},
	{http.MethodGet, "/api/themes/{id}", "Get specific theme"},
	{http.MethodPost, "/api/themes", "Create new theme"},
	{http.MethodPut, "/api/themes/{id}", "Update theme"},
	{http.MethodDelete, "/api/themes/{id}", "Delete theme"},
	{http.MethodGet, "/api/themes/featured", "Get featured themes"},
	{http.MethodGet, "/api/fonts", "List font files"},
	{http.MethodGet, "/api/fonts/{family}/{weight}", "Download font file"},
	{http.MethodGet, "/health", "Health check"},
}

type dependencies struct {
	store    *themestore.Store
	resolver *fonts.Resolver
	clock    clockwork.Clock
}

func newServer(cfg *config.Config, deps dependencies) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newHandler(deps, cfg.Server.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newHandler(deps dependencies, allowedOrigins []string) http.Handler {
	router := http.NewServeMux()
	registerRoutes(router, deps)
	return withMiddleware(router, allowedOrigins)
}

// withMiddleware wraps h, innermost first. Recovery sits inside the access
// log.
func withMiddleware(h http.Handler, allowedOrigins []string) http.Handler {
	return api.ChainMiddleware(
		h,
		api.WithRecovery,
		api.WithLogging,
		api.WithRequestID,
		api.WithCORS(allowedOrigins),
	)
}

func registerRoutes(mux *http.ServeMux, deps dependencies) {
	themes.NewHandler(deps.store).Register(mux)
	fontsapi.NewHandler(deps.resolver).Register(mux)
	health.NewHandler(deps.store, deps.clock).Register(mux)

	// Anything no other pattern claims, including unsupported methods.
	mux.HandleFunc("/", apiutil.HandleNotFound)
}

func logEndpoints(port int, themeCount int) {
	log.Info().Int("port", port).Int("themes", themeCount).Msg("Theme API server starting")
	for _, e := range endpoints {
		log.Info().Str("method", e.Method).Str("path", e.Path).Msg(e.Description)
	}
}
