// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/marchepagne/compte/internal/platform/apperr"
	"github.com/marchepagne/compte/internal/platform/sec"
	"github.com/marchepagne/compte/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for minting identity tokens.
type TokenProvider interface {
	// Issue creates a signed token asserting {id, name, email}, expiring
	// exactly timeToLive after issuance. Signing failure is an explicit
	// result — callers recover from it, they never crash on it.
	Issue(userID, name, email string, timeToLive time.Duration) (string, error)
}

// Service implements the account lifecycle use cases shared by the JSON API
// and the server-rendered forms.
type Service struct {
	users  UserRepository
	tokens TokenProvider
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users UserRepository, tokens TokenProvider) *Service {
	return &Service{users: users, tokens: tokens}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
// Fields are assumed present; surface-level validation (required fields,
// password confirmation, minimum length) belongs to the handlers.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register hashes the password and persists a brand new user account.

Description: Email uniqueness is enforced twice — a friendly pre-check here,
and authoritatively by the unique index in the store (races collapse into the
same Conflict error).

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: apperr.Conflict (email taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Friendly pre-check so the common duplicate case never pays a bcrypt hash.
	_, err := service.users.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict(MsgEmailTaken)
	}
	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	// Prevent storing plain-text passwords. Default cost balances security
	// against CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := service.users.Create(context, user); err != nil {
		if apperr.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Token Issuance

/*
IssueToken mints a signed identity token for a verified user.

Description: Claims are {id, name, email}; expiry is [AccessTokenTTL]
(exactly 3600 seconds) after issuance. Stateless — nothing is persisted, so
there is no revocation list.

Parameters:
  - user: *User (must come from a successful credential check)

Returns:
  - string: Signed compact JWT
  - error: Signing failures
*/
func (service *Service) IssueToken(user *User) (string, error) {
	token, err := service.tokens.Issue(user.ID, user.Name, user.Email, AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}
	return token, nil
}
