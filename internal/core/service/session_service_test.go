package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicore/account-system/internal/core/domain"
)

type memorySessionStore struct {
	sessions map[string]int64
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]int64)}
}

func (m *memorySessionStore) Put(_ context.Context, sessionID string, userID int64, _ time.Duration) error {
	m.sessions[sessionID] = userID
	return nil
}

func (m *memorySessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	_, ok := m.sessions[sessionID]
	return ok, nil
}

func (m *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

func (m *memorySessionStore) DeleteByUser(_ context.Context, userID int64) error {
	for id, uid := range m.sessions {
		if uid == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func TestSessionService_IssueAndResolve(t *testing.T) {
	svc := NewSessionService(newMemorySessionStore(), "secret", time.Hour)

	token, err := svc.Issue(context.Background(), 42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	userID, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if userID != 42 {
		t.Fatalf("resolved user %d, want 42", userID)
	}
}

func TestSessionService_ConcurrentSessionsAllowed(t *testing.T) {
	svc := NewSessionService(newMemorySessionStore(), "secret", time.Hour)

	t1, err := svc.Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	t2, err := svc.Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("two sessions share one token")
	}

	if err := svc.Invalidate(context.Background(), t1); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, err := svc.Resolve(context.Background(), t1); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("revoked session still resolves")
	}
	if _, err := svc.Resolve(context.Background(), t2); err != nil {
		t.Fatalf("unrelated session was revoked: %v", err)
	}
}

func TestSessionService_RejectsForeignToken(t *testing.T) {
	issuer := NewSessionService(newMemorySessionStore(), "secret-a", time.Hour)
	verifier := NewSessionService(newMemorySessionStore(), "secret-b", time.Hour)

	token, err := issuer.Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("token signed with another secret resolved")
	}
	if _, err := verifier.Resolve(context.Background(), "garbage"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("garbage token resolved")
	}
}

func TestSessionService_InvalidateIdempotent(t *testing.T) {
	svc := NewSessionService(newMemorySessionStore(), "secret", time.Hour)

	token, err := svc.Issue(context.Background(), 9)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := svc.Invalidate(context.Background(), token); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if err := svc.Invalidate(context.Background(), token); err != nil {
		t.Fatalf("second invalidate errored: %v", err)
	}
	if err := svc.Invalidate(context.Background(), "never-issued"); err != nil {
		t.Fatalf("invalidating unknown token errored: %v", err)
	}
}

func TestSessionService_InvalidateAll(t *testing.T) {
	svc := NewSessionService(newMemorySessionStore(), "secret", time.Hour)

	t1, _ := svc.Issue(context.Background(), 5)
	t2, _ := svc.Issue(context.Background(), 5)
	other, _ := svc.Issue(context.Background(), 6)

	if err := svc.InvalidateAll(context.Background(), 5); err != nil {
		t.Fatalf("invalidate all failed: %v", err)
	}
	for _, tok := range []string{t1, t2} {
		if _, err := svc.Resolve(context.Background(), tok); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("session for user 5 survived InvalidateAll")
		}
	}
	if _, err := svc.Resolve(context.Background(), other); err != nil {
		t.Fatalf("session for another user was revoked: %v", err)
	}
}
