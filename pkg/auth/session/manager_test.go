package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) SessionKey(sessionID string) string {
	return fmt.Sprintf("sess:%s", sessionID)
}

func TestManagerCreateRevoke(t *testing.T) {
	store := newMockStore()
	manager := &Manager{
		store: store,
		keyer: store,
		ttl:   time.Hour,
	}

	ctx := context.Background()
	sessionID := NewSessionID()
	userID := uuid.New()

	if err := manager.Create(ctx, sessionID, userID); err != nil {
		t.Fatalf("create: %v", err)
	}
	if stored := store.data[store.SessionKey(sessionID)]; stored != userID.String() {
		t.Fatalf("expected stored user %q, got %q", userID, stored)
	}

	ok, err := manager.HasSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatal("expected live session")
	}

	if err := manager.Revoke(ctx, sessionID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = manager.HasSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("has session after revoke: %v", err)
	}
	if ok {
		t.Fatal("expected revoked session to be gone")
	}
}

func TestManagerRotate(t *testing.T) {
	store := newMockStore()
	manager := &Manager{
		store: store,
		keyer: store,
		ttl:   time.Hour,
	}

	ctx := context.Background()
	userID := uuid.New()
	sessionID := NewSessionID()
	if err := manager.Create(ctx, sessionID, userID); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := manager.Rotate(ctx, "missing", userID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}

	newSessionID, err := manager.Rotate(ctx, sessionID, userID)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if _, exists := store.data[store.SessionKey(sessionID)]; exists {
		t.Fatal("old session key left behind")
	}
	if stored := store.data[store.SessionKey(newSessionID)]; stored != userID.String() {
		t.Fatalf("expected rotated session stored, got %q", stored)
	}
}
