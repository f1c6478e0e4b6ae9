// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration an issued JWT remains valid.
	// The storefront contract fixes it at exactly 3600 seconds.
	AccessTokenTTL = 3600 * time.Second

	// SessionTTL is how long an idle browser session survives server-side.
	// The original cookie was browser-session scoped; Redis needs an
	// explicit expiry, so abandoned sessions die after a day.
	SessionTTL = 24 * time.Hour

	// SessionIDLength is the byte length of the random session identifier.
	SessionIDLength = 32

	// SessionCookieName carries the signed session identifier.
	SessionCookieName = "mp_session"

	// MinPasswordLength is the registration form's password floor.
	MinPasswordLength = 6
)

// # Client-Facing Messages
//
// These strings are part of the external contract: the storefront frontend
// and the historical templates match on them verbatim.

const (
	// API path
	MsgEnterAllFields = "Please enter all fields"
	MsgUserExists     = "User already exists"
	MsgRegistered     = "User registered successfully."

	// Shared: unknown email and wrong password are deliberately
	// indistinguishable to the caller.
	MsgInvalidCredentials = "Invalid credentials"

	// Form path
	MsgFillAllFields    = "Please fill in all fields"
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password should be at least 6 characters"
	MsgEmailTaken       = "Email is already registered"
	MsgSomethingWrong   = "Something went wrong"
	MsgRegisteredFlash  = "You are now registered and can log in"
	MsgLoggedOut        = "You are logged out"
	MsgSigninIncomplete = "Could not complete sign-in, please try again"
)
