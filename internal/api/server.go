// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

/*
Package api assembles the HTTP server: middleware chain, route mounting, and
operational endpoints.

# Route Map

	GET  /                    welcome page
	GET  /dashboard           session-guarded dashboard
	GET  /health              liveness
	GET  /ready               readiness (Postgres + Redis)
	POST /api/register        JSON registration
	POST /api/login           JSON login, returns {"token": ...}
	GET  /users/login         login form
	POST /users/login         form login, session + token + redirect
	GET  /users/register      registration form
	POST /users/register      form registration
	GET  /users/logout        session teardown
*/
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marchepagne/compte/internal/platform/config"
	"github.com/marchepagne/compte/internal/platform/middleware"
	"github.com/marchepagne/compte/internal/platform/view"
	"github.com/marchepagne/compte/internal/site"
	"github.com/marchepagne/compte/internal/users/auth"
)

// Dependencies carries everything the router needs, constructed in main.
type Dependencies struct {
	Logger     *slog.Logger
	Config     *config.Config
	Renderer   *view.Renderer
	Users      auth.UserRepository
	Sessions   *auth.SessionManager
	Service    *auth.Service
	Verifier   *auth.Verifier
	Reconciler *auth.Reconciler
	Health     *HealthHandler
}

// NewRouter builds the complete HTTP handler tree.
func NewRouter(deps Dependencies) chi.Router {
	router := chi.NewRouter()

	// Order matters: the request id must exist before the logger annotates
	// with it, and panics must be caught inside the logging span.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(middleware.PanicRecovery(deps.Logger))
	router.Use(middleware.CORS(deps.Config.AppBaseURL))

	router.Get("/health", deps.Health.Liveness)
	router.Get("/ready", deps.Health.Readiness)

	apiHandler := auth.NewAPIHandler(deps.Service, deps.Verifier)
	router.Mount("/api", apiHandler.Routes())

	webHandler := auth.NewWebHandler(deps.Service, deps.Verifier, deps.Sessions, deps.Reconciler, deps.Renderer)
	router.Mount("/users", webHandler.Routes())

	siteHandler := site.NewHandler(deps.Users, deps.Sessions, deps.Renderer)
	router.Mount("/", siteHandler.Routes())

	return router
}

// NewServer wraps the router in an *http.Server with production timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
