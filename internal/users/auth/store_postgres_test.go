// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchepagne/compte/internal/platform/apperr"
	"github.com/marchepagne/compte/internal/users/auth"
)

func newMockRepository(t *testing.T) (pgxmock.PgxPoolIface, *auth.PostgresUserRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, auth.NewUserRepository(mock)
}

/*
TestPostgresUserRepository_Create verifies the insert statement and the
timestamp initialization.
*/
func TestPostgresUserRepository_Create(t *testing.T) {
	mock, repository := newMockRepository(t)

	user := &auth.User{
		ID:           "0198c5f2-0000-7000-8000-000000000001",
		Name:         "Awa Diop",
		Email:        "awa@example.com",
		PasswordHash: "$2a$10$hash",
	}

	mock.ExpectExec("INSERT INTO users.account").
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repository.Create(context.Background(), user)
	require.NoError(t, err)

	// Timestamps are filled in before the insert.
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresUserRepository_Create_DuplicateEmail verifies the unique index
violation is mapped to a client-safe Conflict.
*/
func TestPostgresUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectExec("INSERT INTO users.account").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err := repository.Create(context.Background(), &auth.User{
		ID:    "0198c5f2-0000-7000-8000-000000000002",
		Email: "awa@example.com",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, auth.MsgEmailTaken, appError.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresUserRepository_FindByEmail verifies row hydration.
*/
func TestPostgresUserRepository_FindByEmail(t *testing.T) {
	mock, repository := newMockRepository(t)

	now := time.Now()
	mock.ExpectQuery("SELECT id, name, email, passwordhash, createdat, updatedat").
		WithArgs("awa@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "passwordhash", "createdat", "updatedat"}).
			AddRow("0198c5f2-0000-7000-8000-000000000001", "Awa Diop", "awa@example.com", "$2a$10$hash", now, now))

	user, err := repository.FindByEmail(context.Background(), "awa@example.com")
	require.NoError(t, err)

	assert.Equal(t, "0198c5f2-0000-7000-8000-000000000001", user.ID)
	assert.Equal(t, "Awa Diop", user.Name)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresUserRepository_FindByEmail_NotFound verifies pgx.ErrNoRows maps
to the domain NotFound.
*/
func TestPostgresUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery("SELECT id, name, email, passwordhash, createdat, updatedat").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repository.FindByEmail(context.Background(), "nobody@example.com")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresUserRepository_FindByID_NotFound verifies the primary key lookup
maps missing rows to NotFound.
*/
func TestPostgresUserRepository_FindByID_NotFound(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery("SELECT id, name, email, passwordhash, createdat, updatedat").
		WithArgs("0198c5f2-0000-7000-8000-00000000dead").
		WillReturnError(pgx.ErrNoRows)

	_, err := repository.FindByID(context.Background(), "0198c5f2-0000-7000-8000-00000000dead")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
