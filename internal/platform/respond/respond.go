// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. The
// legacy storefront clients expect flat payloads ({"msg": ...}, {"token": ...}),
// so helpers here write exactly what they are given — no envelope is added.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/marchepagne/compte/internal/platform/apperr"
	"github.com/marchepagne/compte/internal/platform/ctxutil"
)

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response.
func OK(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusOK, payload)
}

// Msg writes a {"msg": ...} payload with the given status code.
//
// This is the wire shape the storefront frontend has always consumed.
func Msg(writer http.ResponseWriter, statusCode int, message string) {
	JSON(writer, statusCode, map[string]string{"msg": message})
}

// Error converts any Go error into a standardized JSON API error response.
//
// Unexpected (non-AppError) failures and every 5xx are logged with the
// request-scoped logger; their internals are hidden from the client.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
		// Storage internals never reach the client.
		Msg(writer, appError.HTTPStatus, "Server Error")
		return
	}

	Msg(writer, appError.HTTPStatus, appError.Message)
}
