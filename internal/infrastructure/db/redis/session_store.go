package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicore/account-system/internal/core/ports"
)

// SessionStore keeps revocable session records in Redis.
// Key format: session:<session_id> -> user id, expiring with the token.
// A per-user set session:user:<user_id> indexes live sessions so all of a
// user's sessions can be revoked at once.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Put(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	userKey := s.userKey(userID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(sessionID), userID, ttl)
	pipe.SAdd(ctx, userKey, sessionID)
	pipe.Expire(ctx, userKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("session exists: %w", err)
	}
	return n > 0, nil
}

// Delete removes a session record. Deleting an unknown session is a no-op.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	userID, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.SRem(ctx, "session:user:"+userID, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID int64) error {
	userKey := s.userKey(userID)

	sessionIDs, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(sessionIDs)+1)
	for _, id := range sessionIDs {
		keys = append(keys, s.key(id))
	}
	keys = append(keys, userKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}

func (s *SessionStore) userKey(userID int64) string {
	return fmt.Sprintf("session:user:%d", userID)
}
