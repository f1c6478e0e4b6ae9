// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

// In-memory implementations of the store contracts.
//
// They back the handler and service tests and are usable for local
// development without Postgres/Redis. Semantics mirror the production
// implementations: NotFound/Conflict mapping, one-shot flashes.

package auth

import (
	"context"
	"sync"

	"github.com/marchepagne/compte/internal/platform/apperr"
)

// # In-Memory User Repository

// MemoryUserRepository implements UserRepository with a mutex-guarded map.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]*User
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

// Create stores the user, enforcing email uniqueness like the DB index does.
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.byEmail[user.Email]; exists {
		return apperr.Conflict(MsgEmailTaken)
	}

	stored := *user
	repository.byID[user.ID] = &stored
	repository.byEmail[user.Email] = &stored
	return nil
}

// FindByEmail performs an exact, case-sensitive lookup.
func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

// FindByID resolves a user by primary key.
func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

// # In-Memory Session Store

// MemorySessionStore implements SessionStore with mutex-guarded maps.
//
// Entries never expire; this store is for tests and development only.
type MemorySessionStore struct {
	mu      sync.Mutex
	users   map[string]string
	flashes map[string][]Flash
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		users:   make(map[string]string),
		flashes: make(map[string][]Flash),
	}
}

// BindUser associates the user with the session.
func (store *MemorySessionStore) BindUser(_ context.Context, sessionID, userID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.users[sessionID] = userID
	return nil
}

// UserID resolves the session to the bound user.
func (store *MemorySessionStore) UserID(_ context.Context, sessionID string) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	userID, ok := store.users[sessionID]
	if !ok {
		return "", apperr.NotFound("Session")
	}
	return userID, nil
}

// Destroy removes the user binding and pending flashes.
func (store *MemorySessionStore) Destroy(_ context.Context, sessionID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.users, sessionID)
	delete(store.flashes, sessionID)
	return nil
}

// PushFlash appends a one-shot notification.
func (store *MemorySessionStore) PushFlash(_ context.Context, sessionID string, flash Flash) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.flashes[sessionID] = append(store.flashes[sessionID], flash)
	return nil
}

// PopFlashes returns pending flashes and clears them.
func (store *MemorySessionStore) PopFlashes(_ context.Context, sessionID string) ([]Flash, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	pending := store.flashes[sessionID]
	delete(store.flashes, sessionID)
	return pending, nil
}
