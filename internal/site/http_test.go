// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchepagne/compte/internal/platform/sec"
	"github.com/marchepagne/compte/internal/platform/view"
	"github.com/marchepagne/compte/internal/site"
	"github.com/marchepagne/compte/internal/users/auth"
)

type siteEnv struct {
	handler    http.Handler
	repository *auth.MemoryUserRepository
	sessions   *auth.SessionManager
}

func newSiteEnv(t *testing.T) *siteEnv {
	t.Helper()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	repository := auth.NewMemoryUserRepository()
	sessions := auth.NewSessionManager(auth.NewMemorySessionStore(), "session-secret", false)

	return &siteEnv{
		handler:    site.NewHandler(repository, sessions, renderer).Routes(),
		repository: repository,
		sessions:   sessions,
	}
}

// signIn seeds a user and returns the session cookie for them.
func (env *siteEnv) signIn(t *testing.T, name string) []*http.Cookie {
	t.Helper()

	hash, err := sec.HashPassword("secret123")
	require.NoError(t, err)

	user := &auth.User{
		ID:           "0198c5f2-0000-7000-8000-000000000001",
		Name:         name,
		Email:        "awa@example.com",
		PasswordHash: hash,
	}
	require.NoError(t, env.repository.Create(context.Background(), user))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	require.NoError(t, env.sessions.SignIn(context.Background(), recorder, request, user.ID))

	return recorder.Result().Cookies()
}

func (env *siteEnv) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	env.handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestSite_Welcome verifies the public landing page renders.
*/
func TestSite_Welcome(t *testing.T) {
	env := newSiteEnv(t)

	response := env.get("/", nil)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Header().Get("Content-Type"), "text/html")
}

/*
TestSite_Dashboard_Anonymous verifies the guard: no session means a redirect
to the login form, not an error page.
*/
func TestSite_Dashboard_Anonymous(t *testing.T) {
	env := newSiteEnv(t)

	response := env.get("/dashboard", nil)

	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, "/users/login", response.Header().Get("Location"))
}

/*
TestSite_Dashboard_SignedIn verifies the dashboard greets the session's user.
*/
func TestSite_Dashboard_SignedIn(t *testing.T) {
	env := newSiteEnv(t)
	cookies := env.signIn(t, "Awa Diop")

	response := env.get("/dashboard", cookies)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "Awa Diop")
}

/*
TestSite_Dashboard_AfterLogout verifies a destroyed session no longer opens
the dashboard.
*/
func TestSite_Dashboard_AfterLogout(t *testing.T) {
	env := newSiteEnv(t)
	cookies := env.signIn(t, "Awa Diop")

	// Destroy the session out of band, as GET /users/logout does.
	logout := httptest.NewRequest(http.MethodGet, "/users/logout", nil)
	for _, cookie := range cookies {
		logout.AddCookie(cookie)
	}
	require.NoError(t, env.sessions.SignOut(context.Background(), logout))

	response := env.get("/dashboard", cookies)

	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, "/users/login", response.Header().Get("Location"))
}

/*
TestSite_Dashboard_DeletedAccount verifies a session bound to a vanished
account falls back to the login form.
*/
func TestSite_Dashboard_DeletedAccount(t *testing.T) {
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	sessions := auth.NewSessionManager(auth.NewMemorySessionStore(), "session-secret", false)
	handler := site.NewHandler(auth.NewMemoryUserRepository(), sessions, renderer).Routes()

	// Session exists, account does not.
	recorder := httptest.NewRecorder()
	seed := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	require.NoError(t, sessions.SignIn(context.Background(), recorder, seed, "0198c5f2-0000-7000-8000-00000000dead"))

	request := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, cookie := range recorder.Result().Cookies() {
		request.AddCookie(cookie)
	}
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)

	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, "/users/login", response.Header().Get("Location"))
}
