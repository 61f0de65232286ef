// Package redis keeps sessions in Redis so several admin processes can share
// one login. Keys are namespaced per profile.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/cmsadmin/internal/store"
	"github.com/aussiebroadwan/cmsadmin/pkg/cryptox"
	"github.com/redis/go-redis/v9"
)

const keyRoot = "cmsadmin"

type Store struct {
	client redis.UniversalClient
	prefix string
}

var (
	_ store.Store  = (*Store)(nil)
	_ store.Salter = (*Store)(nil)
)

// NewStore wraps an existing client.
func NewStore(client redis.UniversalClient, profile string) *Store {
	if profile == "" {
		profile = "default"
	}
	return &Store{
		client: client,
		prefix: fmt.Sprintf("%s:%s:", keyRoot, profile),
	}
}

// Open parses a redis:// URL and connects.
func Open(ctx context.Context, url, profile string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	s := NewStore(redis.NewClient(opts), profile)
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return s, nil
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// Delete removes all keys in one round trip.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}

// Salt is shared by every profile on the server. The first writer wins and
// everyone else reads its value back.
func (s *Store) Salt(ctx context.Context) ([]byte, error) {
	saltKey := keyRoot + ":salt"

	fresh, err := cryptox.NewSalt()
	if err != nil {
		return nil, err
	}
	if err := s.client.SetNX(ctx, saltKey, fresh, 0).Err(); err != nil {
		return nil, fmt.Errorf("persist salt: %w", err)
	}

	salt, err := s.client.Get(ctx, saltKey).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load salt: %w", err)
	}
	return salt, nil
}
