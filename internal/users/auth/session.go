// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/marchepagne/compte/internal/platform/apperr"
	"github.com/marchepagne/compte/internal/platform/sec"
)

// # Browser Sessions

// SessionManager owns the cookie side of the browser session: minting the
// opaque session id, signing it into the cookie, and exposing the
// login/logout/flash contract the web handlers use.
//
// The session DATA lives in the [SessionStore]; the cookie only carries the
// HMAC-signed id.
type SessionManager struct {
	store  SessionStore
	secret []byte
	secure bool
}

// NewSessionManager constructs a [SessionManager].
//
// secure controls the cookie's Secure/SameSite attributes: true in
// production behind HTTPS (SameSite=None, required for the cross-domain
// storefront), false for plain-HTTP development.
func NewSessionManager(store SessionStore, secret string, secure bool) *SessionManager {
	return &SessionManager{store: store, secret: []byte(secret), secure: secure}
}

// sessionID extracts and authenticates the session id from the request cookie.
func (manager *SessionManager) sessionID(request *http.Request) (string, bool) {
	cookie, err := request.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return sec.VerifyValue(cookie.Value, manager.secret)
}

// ensureSession returns the request's session id, minting a fresh one (and
// setting the cookie) when the request has none or the cookie fails its MAC.
func (manager *SessionManager) ensureSession(writer http.ResponseWriter, request *http.Request) (string, error) {
	if sid, ok := manager.sessionID(request); ok {
		return sid, nil
	}

	sid, err := sec.GenerateSecureToken(SessionIDLength)
	if err != nil {
		return "", fmt.Errorf("session_id_generation_failed: %w", err)
	}

	manager.setCookie(writer, sid)
	return sid, nil
}

func (manager *SessionManager) setCookie(writer http.ResponseWriter, sid string) {
	sameSite := http.SameSiteLaxMode
	if manager.secure {
		// Cross-domain storefront requires SameSite=None over HTTPS.
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sec.SignValue(sid, manager.secret),
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		Secure:   manager.secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

/*
SignIn binds the verified user to a fresh browser session.

Description: Anonymous → Authenticated transition. The session id is always
rotated on this privilege change: any id the browser carried before the
login is destroyed and replaced, so an attacker-planted cookie never becomes
an authenticated session.

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - request: *http.Request
  - userID: string

Returns:
  - error: Session store failures
*/
func (manager *SessionManager) SignIn(context context.Context, writer http.ResponseWriter, request *http.Request, userID string) error {
	sid, err := sec.GenerateSecureToken(SessionIDLength)
	if err != nil {
		return fmt.Errorf("session_id_generation_failed: %w", err)
	}

	if previousSID, ok := manager.sessionID(request); ok {
		// Best effort: the old session expires on its own if this fails.
		_ = manager.store.Destroy(context, previousSID)
	}

	manager.setCookie(writer, sid)
	return manager.store.BindUser(context, sid, userID)
}

/*
SignOut destroys the session's user binding.

Description: The session id (and cookie) survive so that a post-logout flash
can still be delivered on the next page; only the authentication is gone.

Parameters:
  - context: context.Context
  - request: *http.Request

Returns:
  - error: Session store failures
*/
func (manager *SessionManager) SignOut(context context.Context, request *http.Request) error {
	sid, ok := manager.sessionID(request)
	if !ok {
		// No session, nothing to destroy — logout is idempotent.
		return nil
	}
	return manager.store.Destroy(context, sid)
}

/*
CurrentUserID resolves the request to the signed-in user.

Returns:
  - string: Bound user ID
  - error: apperr.NotFound when the request is anonymous or the session expired
*/
func (manager *SessionManager) CurrentUserID(context context.Context, request *http.Request) (string, error) {
	sid, ok := manager.sessionID(request)
	if !ok {
		return "", apperr.NotFound("Session")
	}
	return manager.store.UserID(context, sid)
}

/*
Flash queues a one-shot notification for the next rendered page.

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - request: *http.Request
  - kind: string (FlashSuccess or FlashError)
  - message: string

Returns:
  - error: Session store failures
*/
func (manager *SessionManager) Flash(context context.Context, writer http.ResponseWriter, request *http.Request, kind, message string) error {
	sid, err := manager.ensureSession(writer, request)
	if err != nil {
		return err
	}
	return manager.store.PushFlash(context, sid, Flash{Kind: kind, Message: message})
}

/*
ConsumeFlashes pops every pending notification for this request's session.

Description: Best effort — a store failure yields no flashes rather than a
failed page render.

Returns:
  - []Flash: Pending notifications, oldest first (nil when none)
*/
func (manager *SessionManager) ConsumeFlashes(context context.Context, request *http.Request) []Flash {
	sid, ok := manager.sessionID(request)
	if !ok {
		return nil
	}

	flashes, err := manager.store.PopFlashes(context, sid)
	if err != nil {
		return nil
	}
	return flashes
}
