// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

/*
Package auth implements the user identity layer of the Marché Pagne backend.

It defines the core domain entity (User) and the logic for the two
authentication paths the storefront needs:

  - Browser path: cookie session + flash messages, driving the
    server-rendered login/registration pages.
  - API path: JWT issuance for the external single-page application, with a
    redirect reconciler that hands the token back to the SPA.

# Architecture

Both paths share a single credential verification sequence ([Verifier]); only
what happens after a successful check differs. This layer is the "Truth" of
the system: entities defined here have no transport dependencies.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered customer account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Flash is a one-shot notification stored alongside the browser session and
// shown exactly once after a redirect.
type Flash struct {
	// Kind is "success" or "error".
	Kind string `json:"kind"`
	// Message is the human-readable text.
	Message string `json:"message"`
}

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// # Field Identifiers

// Field names for validation and form/JSON mapping in the authentication domain.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldPassword2 = "password2"
)
