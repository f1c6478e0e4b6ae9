// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/marchepagne/compte/internal/platform/respond"
)

// Pinger checks one backing dependency.
type Pinger func(context.Context) error

// HealthHandler serves the operational probes.
type HealthHandler struct {
	database Pinger
	cache    Pinger
}

// NewHealthHandler constructs a [HealthHandler] from dependency pingers.
// A nil pinger is treated as always healthy (used by tests).
func NewHealthHandler(database, cache Pinger) *HealthHandler {
	return &HealthHandler{database: database, cache: cache}
}

// Liveness handles GET /health. It answers as long as the process serves
// requests, regardless of dependency state.
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

/*
Readiness handles GET /ready.

Description: Pings Postgres and Redis with a short deadline. Any failure
answers 503 with the per-dependency status, so the balancer drains the
instance instead of routing logins into a dead store.
*/
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	probeContext, cancel := context.WithTimeout(request.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	healthy := true

	if handler.database != nil {
		if err := handler.database(probeContext); err != nil {
			status["database"] = "unavailable"
			healthy = false
		}
	}
	if handler.cache != nil {
		if err := handler.cache(probeContext); err != nil {
			status["cache"] = "unavailable"
			healthy = false
		}
	}

	if !healthy {
		respond.JSON(writer, http.StatusServiceUnavailable, status)
		return
	}
	respond.OK(writer, status)
}
