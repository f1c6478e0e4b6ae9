// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth

import (
	"net/url"
	"strings"
)

// # Redirect Reconciliation

// Reconciler decides where a form login lands after the token is issued:
// back to the caller-supplied redirect_uri with the token attached, or to
// the storefront's default callback.
type Reconciler struct {
	appBaseURL string
}

// NewReconciler constructs a [Reconciler] for the configured storefront base URL.
func NewReconciler(appBaseURL string) *Reconciler {
	return &Reconciler{appBaseURL: strings.TrimRight(appBaseURL, "/")}
}

/*
Success builds the post-login destination for a freshly issued token.

Description: A supplied redirect_uri is used verbatim as the base — its
existing query string is NOT re-encoded — and the token parameter is appended
with '&' when a '?' is already present, '?' otherwise. Without a
redirect_uri, the destination is the storefront callback with both returnTo
and token percent-encoded.

Parameters:
  - redirectURI: string (optional caller-supplied return URL)
  - token: string (signed JWT)

Returns:
  - string: Final redirect target
*/
func (reconciler *Reconciler) Success(redirectURI, token string) string {
	if redirectURI != "" {
		separator := "?"
		if strings.Contains(redirectURI, "?") {
			separator = "&"
		}
		return redirectURI + separator + "token=" + url.QueryEscape(token)
	}

	returnTo := reconciler.appBaseURL + "/dashboard"
	return reconciler.appBaseURL + "/auth/callback" +
		"?returnTo=" + url.QueryEscape(returnTo) +
		"&token=" + url.QueryEscape(token)
}

/*
Failure builds the retry destination for a rejected login.

Description: The caller's redirect_uri (if any) is re-attached to the login
form URL so the client can retry without losing its origin context.

Parameters:
  - redirectURI: string (optional caller-supplied return URL)

Returns:
  - string: Login form URL, with redirect_uri preserved when supplied
*/
func (reconciler *Reconciler) Failure(redirectURI string) string {
	if redirectURI == "" {
		return "/users/login"
	}
	return "/users/login?redirect_uri=" + url.QueryEscape(redirectURI)
}
