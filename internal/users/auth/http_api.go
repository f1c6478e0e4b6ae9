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
	"github.com/marchepagne/compte/internal/platform/respond"
)

// # API Handler

// APIHandler serves the JSON account endpoints consumed by the storefront
// frontend and by machine clients.
type APIHandler struct {
	service  *Service
	verifier *Verifier
}

// NewAPIHandler constructs an [APIHandler].
func NewAPIHandler(service *Service, verifier *Verifier) *APIHandler {
	return &APIHandler{service: service, verifier: verifier}
}

// Routes mounts the JSON endpoints:
//
//	POST /register
//	POST /login
func (handler *APIHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	return router
}

// registerRequest is the POST /register payload.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the POST /login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
register handles POST /register.

Description: Presence of all three fields is the only surface validation on
this path — the machine contract predates the richer form rules and is kept
as-is for client compatibility.

Responses:
  - 200 {"msg": "User registered successfully."}
  - 400 {"msg": "Please enter all fields"} (any field missing or bad JSON)
  - 400 {"msg": "User already exists"} (duplicate email)
  - 500 {"msg": "Server Error"}
*/
func (handler *APIHandler) register(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Msg(writer, http.StatusBadRequest, MsgEnterAllFields)
		return
	}

	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		respond.Msg(writer, http.StatusBadRequest, MsgEnterAllFields)
		return
	}

	_, err := handler.service.Register(request.Context(), RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if apperr.IsConflict(err) {
			respond.Msg(writer, http.StatusBadRequest, MsgUserExists)
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.Msg(writer, http.StatusOK, MsgRegistered)
}

/*
login handles POST /login.

Description: Every credential rejection — missing field, unknown email, wrong
password — produces the identical 400 response, so the endpoint leaks nothing
about which emails are registered.

Responses:
  - 200 {"token": "<jwt>"}
  - 400 {"msg": "Invalid credentials"}
  - 500 {"msg": "Server Error"}
*/
func (handler *APIHandler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Msg(writer, http.StatusBadRequest, MsgInvalidCredentials)
		return
	}

	check := handler.verifier.Verify(request.Context(), payload.Email, payload.Password)
	switch {
	case check.Status.Denied():
		respond.Msg(writer, http.StatusBadRequest, MsgInvalidCredentials)
		return
	case check.Status == CredentialStorageError:
		respond.Error(writer, request, check.Err)
		return
	}

	token, err := handler.service.IssueToken(check.User)
	if err != nil {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "token_signing_failed",
			slog.String("user_id", check.User.ID),
			slog.String("error", err.Error()),
		)
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"token": token})
}
