// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marchepagne/compte/internal/platform/ctxutil"
)

/*
TestRequestID checks round-tripping of the correlation ID through the context.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestLogger checks that a context without a logger falls back to the default.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()

	// No logger attached: must return the process default, never nil.
	assert.NotNil(t, ctxutil.GetLogger(ctx))

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}
