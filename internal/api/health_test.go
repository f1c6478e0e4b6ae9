// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marchepagne/compte/internal/api"
)

/*
TestHealth_Liveness verifies the liveness probe answers regardless of
dependency state.
*/
func TestHealth_Liveness(t *testing.T) {
	failing := func(context.Context) error { return errors.New("down") }
	handler := api.NewHealthHandler(failing, failing)

	recorder := httptest.NewRecorder()
	handler.Liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

/*
TestHealth_Readiness verifies the readiness probe reports per-dependency
status and flips to 503 on any failure.
*/
func TestHealth_Readiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("down") }

	// 1. All dependencies up
	handler := api.NewHealthHandler(healthy, healthy)
	recorder := httptest.NewRecorder()
	handler.Readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"database":"ok","cache":"ok"}`, recorder.Body.String())

	// 2. Cache down
	handler = api.NewHealthHandler(healthy, failing)
	recorder = httptest.NewRecorder()
	handler.Readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.JSONEq(t, `{"database":"ok","cache":"unavailable"}`, recorder.Body.String())
}
