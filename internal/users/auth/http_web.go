// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marchepagne/compte/internal/platform/apperr"
	"github.com/marchepagne/compte/internal/platform/ctxutil"
	requestutil "github.com/marchepagne/compte/internal/platform/request"
	"github.com/marchepagne/compte/internal/platform/validate"
	"github.com/marchepagne/compte/internal/platform/view"
)

// # Web Handler

// WebHandler serves the server-rendered account pages: the login and
// registration forms, their POST targets, and logout.
//
// The web surface never answers a POST with a 5xx page: infrastructure
// failures during login degrade into a flash message and a redirect back to
// the form, so the browser flow always lands somewhere renderable.
type WebHandler struct {
	service    *Service
	verifier   *Verifier
	sessions   *SessionManager
	reconciler *Reconciler
	renderer   *view.Renderer
}

// NewWebHandler constructs a [WebHandler].
func NewWebHandler(service *Service, verifier *Verifier, sessions *SessionManager, reconciler *Reconciler, renderer *view.Renderer) *WebHandler {
	return &WebHandler{
		service:    service,
		verifier:   verifier,
		sessions:   sessions,
		reconciler: reconciler,
		renderer:   renderer,
	}
}

// Routes mounts the account pages:
//
//	GET  /login
//	POST /login
//	GET  /register
//	POST /register
//	GET  /logout
func (handler *WebHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/login", handler.showLogin)
	router.Post("/login", handler.login)
	router.Get("/register", handler.showRegister)
	router.Post("/register", handler.register)
	router.Get("/logout", handler.logout)
	return router
}

// showLogin handles GET /login. An incoming redirect_uri query parameter is
// echoed into the form so the subsequent POST carries it.
func (handler *WebHandler) showLogin(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, view.PageLogin, view.Data{
		Title:       "Connexion",
		Flashes:     handler.pendingFlashes(request),
		RedirectURI: request.URL.Query().Get("redirect_uri"),
	})
}

// showRegister handles GET /register.
func (handler *WebHandler) showRegister(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, view.PageRegister, view.Data{
		Title:       "Inscription",
		Flashes:     handler.pendingFlashes(request),
		RedirectURI: request.URL.Query().Get("redirect_uri"),
	})
}

/*
register handles POST /register.

Description: Every failed rule is collected before rendering, so the user
sees the complete error list in one round trip. Missing fields collapse into
a single "fill in all fields" message regardless of how many are absent.
Name and email are echoed back into the form; passwords never are.
*/
func (handler *WebHandler) register(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.FormValue(request, FieldName)
	email := requestutil.FormValue(request, FieldEmail)
	password := requestutil.FormValue(request, FieldPassword)
	password2 := requestutil.FormValue(request, FieldPassword2)

	missing := name == "" || email == "" || password == "" || password2 == ""

	validator := new(validate.Validator).
		Custom("form", missing, MsgFillAllFields).
		Custom(FieldPassword2, password != password2, MsgPasswordMismatch).
		Custom(FieldPassword, len(password) < MinPasswordLength, MsgPasswordTooShort)

	if validator.HasErrors() {
		handler.renderRegisterErrors(writer, request, http.StatusOK, fieldMessages(validator), name, email)
		return
	}

	_, err := handler.service.Register(request.Context(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		if apperr.IsConflict(err) {
			handler.renderRegisterErrors(writer, request, http.StatusOK, []string{MsgEmailTaken}, name, email)
			return
		}

		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "web_register_failed",
			slog.String("error", err.Error()),
		)
		handler.renderRegisterErrors(writer, request, http.StatusInternalServerError, []string{MsgSomethingWrong}, name, email)
		return
	}

	handler.flash(writer, request, FlashSuccess, MsgRegisteredFlash)
	http.Redirect(writer, request, "/users/login", http.StatusSeeOther)
}

/*
login handles POST /login.

Description: One verification feeds three outcomes — the browser session, the
identity token, and the final redirect. Every rejection carries the same
"Invalid credentials" flash; infrastructure failures after verification flash
their own message and still redirect, never surfacing a 5xx page.
*/
func (handler *WebHandler) login(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.FormValue(request, FieldEmail)
	password := requestutil.FormValue(request, FieldPassword)
	redirectURI := requestutil.RedirectURI(request)

	check := handler.verifier.Verify(request.Context(), email, password)
	switch {
	case check.Status.Denied():
		handler.flash(writer, request, FlashError, MsgInvalidCredentials)
		http.Redirect(writer, request, handler.reconciler.Failure(redirectURI), http.StatusSeeOther)
		return

	case check.Status == CredentialStorageError:
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "web_login_lookup_failed",
			slog.String("error", check.Err.Error()),
		)
		handler.flash(writer, request, FlashError, MsgSomethingWrong)
		http.Redirect(writer, request, handler.reconciler.Failure(redirectURI), http.StatusSeeOther)
		return
	}

	if err := handler.sessions.SignIn(request.Context(), writer, request, check.User.ID); err != nil {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "web_login_session_failed",
			slog.String("user_id", check.User.ID),
			slog.String("error", err.Error()),
		)
		handler.flash(writer, request, FlashError, MsgSigninIncomplete)
		http.Redirect(writer, request, handler.reconciler.Failure(redirectURI), http.StatusSeeOther)
		return
	}

	token, err := handler.service.IssueToken(check.User)
	if err != nil {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "web_login_token_failed",
			slog.String("user_id", check.User.ID),
			slog.String("error", err.Error()),
		)
		handler.flash(writer, request, FlashError, MsgSigninIncomplete)
		http.Redirect(writer, request, handler.reconciler.Failure(redirectURI), http.StatusSeeOther)
		return
	}

	http.Redirect(writer, request, handler.reconciler.Success(redirectURI, token), http.StatusSeeOther)
}

// logout handles GET /logout: destroy the session binding, queue the goodbye
// flash, land on the login form.
func (handler *WebHandler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.sessions.SignOut(request.Context(), request); err != nil {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "web_logout_failed",
			slog.String("error", err.Error()),
		)
	}

	handler.flash(writer, request, FlashSuccess, MsgLoggedOut)
	http.Redirect(writer, request, "/users/login", http.StatusFound)
}

// renderRegisterErrors re-renders the registration form with the collected
// error list and the echoed name/email.
func (handler *WebHandler) renderRegisterErrors(writer http.ResponseWriter, request *http.Request, statusCode int, errors []string, name, email string) {
	handler.render(writer, request, statusCode, view.PageRegister, view.Data{
		Title:  "Inscription",
		Errors: errors,
		Name:   name,
		Email:  email,
	})
}

// render executes the page template, logging (not surfacing) render failures.
func (handler *WebHandler) render(writer http.ResponseWriter, request *http.Request, statusCode int, page string, data view.Data) {
	if err := handler.renderer.Render(writer, statusCode, page, data); err != nil {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "page_render_failed",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
	}
}

// flash queues a one-shot message, logging (not surfacing) store failures.
func (handler *WebHandler) flash(writer http.ResponseWriter, request *http.Request, kind, message string) {
	if err := handler.sessions.Flash(request.Context(), writer, request, kind, message); err != nil {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "flash_enqueue_failed",
			slog.String("error", err.Error()),
		)
	}
}

// pendingFlashes pops the session's one-shot messages into the view shape.
func (handler *WebHandler) pendingFlashes(request *http.Request) []view.Flash {
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

// fieldMessages flattens the validator's field errors into the ordered
// message list the register template prints.
func fieldMessages(validator *validate.Validator) []string {
	details := validator.Details()
	messages := make([]string, 0, len(details))
	for _, detail := range details {
		messages = append(messages, detail.Message)
	}
	return messages
}
