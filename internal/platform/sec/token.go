// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// # Opaque Tokens

// GenerateSecureToken returns a cryptographically random hex string of the
// given byte length. Used for browser session identifiers.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// # Cookie Authentication
//
// The session cookie carries "<sid>.<mac>" where mac = HMAC-SHA256(sid, secret).
// The MAC makes the cookie tamper-evident; the session data itself lives
// server-side, keyed by sid.

// SignValue produces the authenticated cookie representation of value.
func SignValue(value string, secret []byte) string {
	return value + "." + hex.EncodeToString(computeMAC(value, secret))
}

// VerifyValue checks an authenticated cookie string and returns the embedded
// value. The comparison is constant-time.
func VerifyValue(signed string, secret []byte) (string, bool) {
	dot := strings.LastIndexByte(signed, '.')
	if dot <= 0 {
		return "", false
	}

	value, macHex := signed[:dot], signed[dot+1:]
	mac, err := hex.DecodeString(macHex)
	if err != nil {
		return "", false
	}

	expected := computeMAC(value, secret)
	if subtle.ConstantTimeCompare(mac, expected) != 1 {
		return "", false
	}
	return value, true
}

func computeMAC(value string, secret []byte) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(value))
	return h.Sum(nil)
}
