// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth

import (
	"context"

	"github.com/marchepagne/compte/internal/platform/apperr"
	"github.com/marchepagne/compte/internal/platform/sec"
)

// # Credential Verification

// CredentialStatus tags the outcome of a credential check.
type CredentialStatus int

const (
	// CredentialOK: the password matched; CredentialCheck.User is set.
	CredentialOK CredentialStatus = iota

	// CredentialInvalidInput: email or password was empty. Rejected before
	// any store access.
	CredentialInvalidInput

	// CredentialNotFound: no account with that email.
	CredentialNotFound

	// CredentialWrongPassword: the account exists but the password differs.
	CredentialWrongPassword

	// CredentialStorageError: the lookup itself failed; CredentialCheck.Err
	// carries the cause.
	CredentialStorageError
)

// Denied reports whether the status is a credential rejection (as opposed to
// success or an infrastructure failure). Callers MUST present NotFound and
// WrongPassword identically — distinguishing them would allow account
// enumeration.
func (status CredentialStatus) Denied() bool {
	return status == CredentialInvalidInput ||
		status == CredentialNotFound ||
		status == CredentialWrongPassword
}

// CredentialCheck is the tagged result shared by both login paths.
type CredentialCheck struct {
	Status CredentialStatus
	User   *User
	Err    error
}

// Verifier runs the credential verification sequence: one lookup by email,
// one bcrypt comparison. Read-only; it never touches the session or issues
// tokens.
type Verifier struct {
	users UserRepository
}

// NewVerifier constructs a [Verifier] over the given credential store.
func NewVerifier(users UserRepository) *Verifier {
	return &Verifier{users: users}
}

/*
Verify checks an email/password pair against the credential store.

Description: Empty inputs are rejected without a store read. The lookup is an
exact email match; the password comparison is bcrypt's constant-time check.
NotFound and WrongPassword still differ in timing by one hash computation —
a known tension, accepted because bcrypt dominates the request cost either way.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - CredentialCheck: Tagged outcome; User populated only on CredentialOK
*/
func (verifier *Verifier) Verify(context context.Context, email, password string) CredentialCheck {
	if email == "" || password == "" {
		return CredentialCheck{Status: CredentialInvalidInput}
	}

	user, err := verifier.users.FindByEmail(context, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return CredentialCheck{Status: CredentialNotFound}
		}
		return CredentialCheck{Status: CredentialStorageError, Err: err}
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return CredentialCheck{Status: CredentialWrongPassword}
	}

	return CredentialCheck{Status: CredentialOK, User: user}
}
