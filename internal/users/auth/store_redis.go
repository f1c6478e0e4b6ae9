// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/marchepagne/compte/internal/platform/apperr"
)

// Redis key layout. User binding and flash list are separate keys so a flash
// can exist on an anonymous session (e.g. the post-registration message).
const (
	sessionUserKeyPrefix  = "session:user:"
	sessionFlashKeyPrefix = "session:flash:"
)

// RedisSessionStore implements SessionStore using Redis.
//
// All keys carry [SessionTTL]; abandoned sessions and unread flashes expire
// without any cleanup job.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore.
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

/*
BindUser associates the authenticated user with the session.

Parameters:
  - context: context.Context
  - sessionID: string
  - userID: string

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) BindUser(context context.Context, sessionID, userID string) error {
	key := sessionUserKeyPrefix + sessionID

	if err := store.client.Set(context, key, userID, SessionTTL).Err(); err != nil {
		return fmt.Errorf("redis_session_bind_user_failed: %w", err)
	}

	return nil
}

/*
UserID resolves the session to the bound user.

Description: Returns apperr.NotFound for anonymous or expired sessions.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - string: Bound user ID
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisSessionStore) UserID(context context.Context, sessionID string) (string, error) {
	key := sessionUserKeyPrefix + sessionID

	userID, err := store.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session")
		}
		return "", fmt.Errorf("redis_session_user_id_failed: %w", err)
	}

	return userID, nil
}

/*
Destroy removes the user binding and any pending flashes.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (store *RedisSessionStore) Destroy(context context.Context, sessionID string) error {
	err := store.client.Del(context,
		sessionUserKeyPrefix+sessionID,
		sessionFlashKeyPrefix+sessionID,
	).Err()

	if err != nil {
		return fmt.Errorf("redis_session_destroy_failed: %w", err)
	}

	return nil
}

/*
PushFlash appends a one-shot notification to the session's flash list.

Parameters:
  - context: context.Context
  - sessionID: string
  - flash: Flash

Returns:
  - error: Encoding or storage failures
*/
func (store *RedisSessionStore) PushFlash(context context.Context, sessionID string, flash Flash) error {
	key := sessionFlashKeyPrefix + sessionID

	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("redis_session_flash_encode_failed: %w", err)
	}

	pipeline := store.client.TxPipeline()
	pipeline.RPush(context, key, payload)
	pipeline.Expire(context, key, SessionTTL)

	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("redis_session_push_flash_failed: %w", err)
	}

	return nil
}

/*
PopFlashes returns all pending flashes and clears them atomically.

Description: Read-and-delete in one transaction so a message is shown at most once.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - []Flash: Pending notifications, oldest first
  - error: Retrieval failures
*/
func (store *RedisSessionStore) PopFlashes(context context.Context, sessionID string) ([]Flash, error) {
	key := sessionFlashKeyPrefix + sessionID

	pipeline := store.client.TxPipeline()
	listCmd := pipeline.LRange(context, key, 0, -1)
	pipeline.Del(context, key)

	if _, err := pipeline.Exec(context); err != nil {
		return nil, fmt.Errorf("redis_session_pop_flashes_failed: %w", err)
	}

	entries := listCmd.Val()
	if len(entries) == 0 {
		return nil, nil
	}

	flashes := make([]Flash, 0, len(entries))
	for _, entry := range entries {
		var flash Flash
		if err := json.Unmarshal([]byte(entry), &flash); err != nil {
			// A corrupt entry is dropped rather than failing the page render.
			continue
		}
		flashes = append(flashes, flash)
	}

	return flashes, nil
}
