// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// The account record is immutable after creation: there is no update or
// delete operation in this service.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.
		The match is exact and case-sensitive, as stored.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.
		A unique-email violation surfaces as apperr.Conflict.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict or persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Browser Session Access

// SessionStore defines the contract for server-side browser session state.
//
// A session exists as soon as a flash message or a user binding is written
// under its id; both expire together after [SessionTTL].
type SessionStore interface {

	/*
		BindUser associates an authenticated user with the session.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	BindUser(context context.Context, sessionID, userID string) error

	/*
		UserID resolves the session to the bound user.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - string: Bound user ID
		  - error: apperr.NotFound when the session is anonymous or expired
	*/
	UserID(context context.Context, sessionID string) (string, error)

	/*
		Destroy removes the user binding and any pending flashes.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Persistence failures
	*/
	Destroy(context context.Context, sessionID string) error

	/*
		PushFlash appends a one-shot notification to the session.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - flash: Flash

		Returns:
		  - error: Persistence failures
	*/
	PushFlash(context context.Context, sessionID string, flash Flash) error

	/*
		PopFlashes returns all pending flashes and clears them atomically.
		A second call returns nothing.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - []Flash: Pending notifications, oldest first
		  - error: Retrieval failures
	*/
	PopFlashes(context context.Context, sessionID string) ([]Flash, error)
}
