package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

// SessionService is the session authority. Tokens are HS256 JWTs carrying the
// user id and a session id; the session id is also written to the session
// store with the token's TTL so a token can be revoked before it expires.
type SessionService struct {
	store     ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewSessionService(store ports.SessionStore, jwtSecret string, tokenTTL time.Duration) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *SessionService) Issue(ctx context.Context, userID int64) (string, error) {
	sessionID := uuid.NewString()

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"jti": sessionID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	if err := s.store.Put(ctx, sessionID, userID, s.tokenTTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (int64, error) {
	userID, sessionID, err := s.parse(token)
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}

	live, err := s.store.Exists(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("session lookup: %w", err)
	}
	if !live {
		return 0, domain.ErrUnauthenticated
	}
	return userID, nil
}

func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	_, sessionID, err := s.parse(token)
	if err != nil {
		// Nothing to revoke for a token that never identified a session.
		return nil
	}
	return s.store.Delete(ctx, sessionID)
}

func (s *SessionService) InvalidateAll(ctx context.Context, userID int64) error {
	return s.store.DeleteByUser(ctx, userID)
}

// parse validates the token signature and expiry and extracts the bound user
// id and session id.
func (s *SessionService) parse(token string) (int64, string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, "", domain.ErrUnauthenticated
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", domain.ErrUnauthenticated
	}

	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return 0, "", domain.ErrUnauthenticated
	}
	return userID, sessionID, nil
}
