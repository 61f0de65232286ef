package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/cmsadmin/internal/store"
	storeredis "github.com/aussiebroadwan/cmsadmin/internal/store/drivers/redis"
	"github.com/aussiebroadwan/cmsadmin/internal/store/drivers/sqlite"
	"github.com/aussiebroadwan/cmsadmin/pkg/cryptox"
)

// OpenStore opens the configured session store and, when a passphrase is
// available, wraps it so values are sealed at rest.
func OpenStore(ctx context.Context, cfg StoreConfig, logger *slog.Logger) (store.Store, error) {
	var (
		s   store.Store
		err error
	)

	switch cfg.Driver {
	case store.DriverMemory:
		s = store.NewMemory()
	case store.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		s, err = sqlite.Open(cfg.SQLitePath, cfg.Profile)
	case store.DriverRedis:
		s, err = storeredis.Open(ctx, cfg.RedisURL, cfg.Profile)
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", cfg.Driver, err)
	}

	passphrase, err := cryptox.LoadPassphrase(cfg.PassphraseFile, PassphraseEnv)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if passphrase == "" {
		logger.Debug("session store opened", "driver", cfg.Driver, "profile", cfg.Profile, "sealed", false)
		return s, nil
	}

	sealed, err := store.Seal(ctx, s, passphrase)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to seal %s store: %w", cfg.Driver, err)
	}
	logger.Debug("session store opened", "driver", cfg.Driver, "profile", cfg.Profile, "sealed", true)
	return sealed, nil
}
