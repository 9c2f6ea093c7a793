package ports

import (
	"context"
	"time"
)

// SessionAuthority issues and resolves bearer tokens bound to a user id.
// Multiple concurrent sessions per user are allowed.
type SessionAuthority interface {
	// Issue creates a new session for the user and returns its bearer token.
	Issue(ctx context.Context, userID int64) (string, error)
	// Resolve returns the user id a token is bound to, or ErrUnauthenticated
	// when the token is missing, malformed, expired or revoked.
	Resolve(ctx context.Context, token string) (int64, error)
	// Invalidate revokes a session. Revoking an unknown or already-expired
	// token is not an error.
	Invalidate(ctx context.Context, token string) error
	// InvalidateAll revokes every live session for a user.
	InvalidateAll(ctx context.Context, userID int64) error
}

// SessionStore persists revocable session records.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID int64) error
}
