// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchepagne/compte/internal/platform/apperr"
	"github.com/marchepagne/compte/internal/platform/sec"
	"github.com/marchepagne/compte/internal/users/auth"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret-key", "compte-test")
	require.NoError(t, err)
	return tokens
}

/*
TestService_Register verifies that registration stores a hashed credential
under a fresh ID.
*/
func TestService_Register(t *testing.T) {
	repository := auth.NewMemoryUserRepository()
	service := auth.NewService(repository, newTokenService(t))

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Name:     "Awa Diop",
		Email:    "awa@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// 1. Identity assigned
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Awa Diop", user.Name)
	assert.Equal(t, "awa@example.com", user.Email)

	// 2. Stored credential is a hash, never the plain text
	stored, err := repository.FindByEmail(context.Background(), "awa@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("secret123", stored.PasswordHash))
}

/*
TestService_Register_DuplicateEmail verifies that a second registration with
the same email fails with Conflict and leaves the first record untouched.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	repository := auth.NewMemoryUserRepository()
	service := auth.NewService(repository, newTokenService(t))

	first, err := service.Register(context.Background(), auth.RegisterInput{
		Name:     "Awa Diop",
		Email:    "awa@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Name:     "Imposter",
		Email:    "awa@example.com",
		Password: "other-password",
	})

	// 1. Conflict surfaced
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, auth.MsgEmailTaken, appError.Message)

	// 2. First record unchanged
	stored, err := repository.FindByEmail(context.Background(), "awa@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Awa Diop", stored.Name)
	assert.True(t, sec.CheckPasswordHash("secret123", stored.PasswordHash))
}

/*
TestService_IssueToken verifies the issued token carries the {id, name, email}
claims and expires exactly one hour after issuance.
*/
func TestService_IssueToken(t *testing.T) {
	tokens := newTokenService(t)
	service := auth.NewService(auth.NewMemoryUserRepository(), tokens)

	user := &auth.User{
		ID:    "0198c5f2-0000-7000-8000-000000000042",
		Name:  "Awa Diop",
		Email: "awa@example.com",
	}

	signed, err := service.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)

	// 1. Identity claims
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Email, claims.Email)

	// 2. Fixed one hour lifetime
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, time.Hour, lifetime)
}
