package apiclient

import (
	"context"
	"sync"
)

// Keys persisted in a TokenStore.
const (
	KeyAccessToken       = "access_token"
	KeyRefreshToken      = "refresh_token"
	KeyUser              = "user"
	KeyInventoryLastSync = "inventory_last_sync"
)

// TokenStore is the small key/value store holding the session. Get returns
// "" and a nil error for missing keys. Concurrent writers are last write wins.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// MemoryStore is a process-local TokenStore.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// SaveTokens persists a token pair. An empty refresh token leaves the stored
// one in place.
func SaveTokens(ctx context.Context, s TokenStore, access, refresh string) error {
	if err := s.Set(ctx, KeyAccessToken, access); err != nil {
		return err
	}
	if refresh == "" {
		return nil
	}
	return s.Set(ctx, KeyRefreshToken, refresh)
}

// ClearSession removes the tokens and cached user.
func ClearSession(ctx context.Context, s TokenStore) error {
	return s.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser)
}
