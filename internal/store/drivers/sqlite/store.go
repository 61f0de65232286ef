package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/cmsadmin/internal/store"
	"github.com/aussiebroadwan/cmsadmin/pkg/cryptox"
	_ "modernc.org/sqlite"
)

const saltName = "kdf_salt"

// Store keeps session values in a local SQLite file, one row per
// (profile, key). Profiles let one file hold sessions for several
// environments.
type Store struct {
	db      *sql.DB
	profile string
}

var (
	_ store.Store  = (*Store)(nil)
	_ store.Salter = (*Store)(nil)
)

// NewStore opens the database at dsn. Call ApplyMigrations before use.
func NewStore(dsn, profile string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One writer at a time keeps SQLITE_BUSY away from concurrent refreshes
	db.SetMaxOpenConns(1)

	if profile == "" {
		profile = "default"
	}
	return &Store{db: db, profile: profile}, nil
}

// Open builds a file DSN with WAL and a busy timeout, opens it and applies
// migrations.
func Open(path, profile string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	s, err := NewStore(dsn, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	if err := s.ApplyMigrations(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to apply store migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx executes fn within a transaction, committing when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE profile = ? AND key = ?`, s.profile, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (profile, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (profile, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.profile, key, value, time.Now().UnixMilli(),
	)
	return err
}

// Delete removes keys atomically.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	return s.WithTx(ctx, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM kv WHERE profile = ? AND key = ?`, s.profile, k,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// Keys lists the keys stored for the profile.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv WHERE profile = ? ORDER BY key`, s.profile)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Salt returns the database's key derivation salt, creating it on first use.
// The salt is shared by every profile in the file.
func (s *Store) Salt(ctx context.Context) ([]byte, error) {
	var salt []byte
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT value FROM meta WHERE name = ?`, saltName).Scan(&salt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		if salt, err = cryptox.NewSalt(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO meta (name, value) VALUES (?, ?)`, saltName, salt)
		return err
	})
	return salt, err
}
