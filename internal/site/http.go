// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

/*
Package site serves the public pages of the account portal: the welcome page
and the session-guarded dashboard.

# Architecture

The dashboard is the only page behind the session guard. Anonymous requests
are redirected to the login form rather than answered with a 401 — this is a
browser surface, not an API.
*/
package site

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marchepagne/compte/internal/platform/apperr"
	"github.com/marchepagne/compte/internal/platform/ctxutil"
	"github.com/marchepagne/compte/internal/platform/view"
	"github.com/marchepagne/compte/internal/users/auth"
)

// Handler serves the welcome page and the dashboard.
type Handler struct {
	users    auth.UserRepository
	sessions *auth.SessionManager
	renderer *view.Renderer
}

// NewHandler constructs a site [Handler].
func NewHandler(users auth.UserRepository, sessions *auth.SessionManager, renderer *view.Renderer) *Handler {
	return &Handler{users: users, sessions: sessions, renderer: renderer}
}

// Routes mounts the public pages:
//
//	GET /
//	GET /dashboard
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.welcome)
	router.Get("/dashboard", handler.dashboard)
	return router
}

// welcome handles GET /.
func (handler *Handler) welcome(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, view.PageWelcome, view.Data{
		Title: "Bienvenue",
	})
}

/*
dashboard handles GET /dashboard.

Description: Resolves the session to its user. A missing session, an expired
one, or a binding to a since-deleted account all land on the login form; only
storage failures surface as an error page.
*/
func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	userID, err := handler.sessions.CurrentUserID(request.Context(), request)
	if err != nil {
		http.Redirect(writer, request, "/users/login", http.StatusFound)
		return
	}

	user, err := handler.users.FindByID(request.Context(), userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			// Session outlived the account.
			http.Redirect(writer, request, "/users/login", http.StatusFound)
			return
		}

		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "dashboard_user_lookup_failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		http.Error(writer, "Server Error", http.StatusInternalServerError)
		return
	}

	handler.render(writer, request, http.StatusOK, view.PageDashboard, view.Data{
		Title:    "Tableau de bord",
		Flashes:  handler.pendingFlashes(request),
		UserName: user.Name,
	})
}

func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, statusCode int, page string, data view.Data) {
	if err := handler.renderer.Render(writer, statusCode, page, data); err != nil {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "page_render_failed",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
	}
}

func (handler *Handler) pendingFlashes(request *http.Request) []view.Flash {
	flashes := handler.sessions.ConsumeFlashes(request.Context(), request)
	if len(flashes) == 0 {
		return nil
	}

	converted := make([]view.Flash, 0, len(flashes))
	for _, flash := range flashes {
		converted = append(converted, view.Flash{Kind: flash.Kind, Message: flash.Message})
	}
	return converted
}
