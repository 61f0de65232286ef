// Package store holds the session persistence used by the CLI and the admin
// server. A Store is an apiclient.TokenStore that can also be health checked
// and closed. Drivers live under drivers/.
package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
)

var (
	// ErrUnknownDriver is returned when the configured driver is not one of
	// memory, sqlite or redis.
	ErrUnknownDriver = errors.New("store: unknown driver")

	// ErrSealingUnsupported is returned when sealing is requested for a
	// driver that cannot persist a salt.
	ErrSealingUnsupported = errors.New("store: driver does not support sealing")
)

// Driver names accepted in configuration.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Store is the root persistence interface.
type Store interface {
	apiclient.TokenStore

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Salter is implemented by drivers that can keep the key derivation salt
// next to the data. Salt creates one on first use.
type Salter interface {
	Salt(ctx context.Context) ([]byte, error)
}

// Memory is a process-local Store. Sessions are lost on exit.
type Memory struct {
	*apiclient.MemoryStore
}

func NewMemory() *Memory {
	return &Memory{MemoryStore: apiclient.NewMemoryStore()}
}

func (m *Memory) Ping(context.Context) error { return nil }
func (m *Memory) Close() error               { return nil }
