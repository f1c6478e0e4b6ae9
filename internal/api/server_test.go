// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package api_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchepagne/compte/internal/api"
	"github.com/marchepagne/compte/internal/platform/config"
	"github.com/marchepagne/compte/internal/platform/sec"
	"github.com/marchepagne/compte/internal/platform/view"
	"github.com/marchepagne/compte/internal/users/auth"
)

// newTestRouter assembles the full handler tree on in-memory stores.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	tokens, err := sec.NewTokenService("test-secret-key", "compte-test")
	require.NoError(t, err)

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	users := auth.NewMemoryUserRepository()
	sessions := auth.NewSessionManager(auth.NewMemorySessionStore(), "session-secret", false)

	return api.NewRouter(api.Dependencies{
		Logger: logger,
		Config: &config.Config{
			ServerPort:  "8080",
			Environment: "test",
			AppBaseURL:  "https://marche-pagne.shop",
		},
		Renderer:   renderer,
		Users:      users,
		Sessions:   sessions,
		Service:    auth.NewService(users, tokens),
		Verifier:   auth.NewVerifier(users),
		Reconciler: auth.NewReconciler("https://marche-pagne.shop"),
		Health:     api.NewHealthHandler(nil, nil),
	})
}

/*
TestRouter_Mounts verifies every surface answers on its documented path.
*/
func TestRouter_Mounts(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/dashboard", http.StatusFound},
		{http.MethodGet, "/users/login", http.StatusOK},
		{http.MethodGet, "/users/register", http.StatusOK},
		{http.MethodGet, "/users/logout", http.StatusFound},
		{http.MethodPost, "/api/login", http.StatusBadRequest},
	}

	for _, tc := range tests {
		request := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, tc.status, recorder.Code, "%s %s", tc.method, tc.path)
	}
}

/*
TestRouter_APIPaths verifies the JSON endpoints answer on the paths the
storefront frontend calls: /api/register and /api/login, directly under
/api. A 404 here would break every deployed client.
*/
func TestRouter_APIPaths(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/register", "/api/login"} {
		request := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		request.Header.Set("Content-Type", "application/json")

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		// Empty payloads are rejected by the handler, never by the router.
		assert.NotEqual(t, http.StatusNotFound, recorder.Code, "POST %s", path)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "POST %s", path)
	}
}

/*
TestRouter_RequestIDHeader verifies the middleware chain stamps every
response with a request id.
*/
func TestRouter_RequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, recorder.Header().Get("X-Request-Id"))
}

/*
TestRouter_CORS verifies the storefront origin is allowed with credentials.
*/
func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t)

	request := httptest.NewRequest(http.MethodGet, "/health", nil)
	request.Header.Set("Origin", "https://marche-pagne.shop")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "https://marche-pagne.shop", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
}

/*
TestRouter_CORSPreflight verifies preflights from the storefront origin are
answered directly, while preflights from unknown origins get no grant and
fall through to the router.
*/
func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	// 1. Allowed origin: short-circuited with the grant headers
	request := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	request.Header.Set("Origin", "https://marche-pagne.shop")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://marche-pagne.shop", recorder.Header().Get("Access-Control-Allow-Origin"))

	// 2. Unknown origin: no grant, no 204 — the router answers
	request = httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.NotEqual(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
