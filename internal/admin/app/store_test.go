package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/cmsadmin/internal/store"
	"github.com/aussiebroadwan/cmsadmin/internal/store/drivers/sqlite"
	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/aussiebroadwan/cmsadmin/pkg/cryptox"
	"github.com/aussiebroadwan/cmsadmin/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	t.Setenv(PassphraseEnv, "")

	t.Run("memory", func(t *testing.T) {
		s, err := OpenStore(ctx, StoreConfig{Driver: store.DriverMemory}, slogx.Discard())
		require.NoError(t, err)
		require.IsType(t, &store.Memory{}, s)
		require.NoError(t, s.Close())
	})

	t.Run("sqlite creates its directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "session.db")
		s, err := OpenStore(ctx, StoreConfig{Driver: store.DriverSQLite, SQLitePath: path}, slogx.Discard())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Set(ctx, apiclient.KeyAccessToken, "plain"))
		_, err = os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore(ctx, StoreConfig{Driver: "etcd"}, slogx.Discard())
		require.ErrorIs(t, err, store.ErrUnknownDriver)
	})

	t.Run("memory cannot be sealed", func(t *testing.T) {
		t.Setenv(PassphraseEnv, "secret")
		_, err := OpenStore(ctx, StoreConfig{Driver: store.DriverMemory}, slogx.Discard())
		require.ErrorIs(t, err, store.ErrSealingUnsupported)
	})
}

func TestOpenStoreSealedFromFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	passFile := filepath.Join(dir, "passphrase")
	require.NoError(t, os.WriteFile(passFile, []byte("correct horse\n"), 0o600))

	dbPath := filepath.Join(dir, "session.db")
	s, err := OpenStore(ctx, StoreConfig{
		Driver:         store.DriverSQLite,
		SQLitePath:     dbPath,
		Profile:        "default",
		PassphraseFile: passFile,
	}, slogx.Discard())
	require.NoError(t, err)
	require.IsType(t, &store.Sealed{}, s)

	require.NoError(t, s.Set(ctx, apiclient.KeyRefreshToken, "refresh-xyz"))
	require.NoError(t, s.Close())

	// The raw file only holds ciphertext
	raw, err := sqlite.Open(dbPath, "default")
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	v, err := raw.Get(ctx, apiclient.KeyRefreshToken)
	require.NoError(t, err)
	require.True(t, cryptox.IsSealed(v))
	require.NotContains(t, v, "refresh-xyz")
}
