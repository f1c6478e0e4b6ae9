// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, cookie
// authentication) from the domain logic. It acts as an Infrastructure service
// injected into the Application layer via the TokenProvider interface that the
// auth domain defines.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when a TokenService is constructed without a
// signing secret. Tokens must never be silently signed with an empty key.
var ErrEmptySecret = errors.New("sec: signing secret is empty")

// IdentityClaims represents the payload embedded inside an issued JWT.
//
// # Why these claims?
//
// The storefront SPA rebuilds the logged-in user entirely from the token
// ({id, name, email}), so it never has to call back for profile data before
// rendering the account header.
type IdentityClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService from a shared signing secret.
// It refuses an empty secret outright.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// Issue creates a new signed JWT asserting the given identity.
// The expiry is exactly timeToLive after the issue instant.
func (service *TokenService) Issue(userID, name, email string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
		Name:   name,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a JWT string.
func (service *TokenService) Verify(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
