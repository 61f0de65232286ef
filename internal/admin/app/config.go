package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aussiebroadwan/cmsadmin/internal/store"
	"github.com/aussiebroadwan/cmsadmin/pkg/runtimeconfig"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CMSADMIN_STORE_DRIVER.
const EnvPrefix = "CMSADMIN"

// PassphraseEnv holds the store passphrase when no passphrase file is set.
const PassphraseEnv = EnvPrefix + "_STORE_PASSPHRASE"

type StoreConfig struct {
	Driver         string // memory, sqlite or redis (default: sqlite)
	Profile        string // Namespace inside the store (default: default)
	SQLitePath     string // Session database file (default: <user config dir>/cmsadmin/session.db)
	RedisURL       string // redis:// URL for the redis driver
	PassphraseFile string // Optional: file holding the sealing passphrase
}

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: warn)
	LogFormat string // Log format (json, text) (default: text)

	// Explicit API URLs. When empty the runtime config resolver decides.
	CMSURL      string
	PlatformURL string
	Tenant      string // Optional: overrides the organization claim

	RequestTimeout time.Duration // Per-request timeout (default: 30s)
	RateLimit      float64       // Client requests per second, 0 disables (default: 0)
	RateBurst      int           // Client burst (default: 10)

	Store StoreConfig

	ServeAddr           string        // Admin server listen address (default: :3000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	SyncInterval        time.Duration // Inventory sync interval, 0 disables (default: 5m)
	LowStockThreshold   int           // Inventory at or below this is flagged (default: 5)

	ThemeSeed string // Seed colour for the admin theme (default: #6d28d9)
	ThemeName string // (default: cmsadmin)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("cms_url", "")
	v.SetDefault("platform_url", "")
	v.SetDefault("tenant", "")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("rate_limit.rps", 0)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("store.driver", store.DriverSQLite)
	v.SetDefault("store.profile", "default")
	v.SetDefault("store.sqlite_path", defaultSQLitePath())
	v.SetDefault("store.redis_url", "redis://localhost:6379/0")
	v.SetDefault("store.passphrase_file", "")
	v.SetDefault("serve.addr", ":3000")
	v.SetDefault("serve.shutdown_grace_period", 10*time.Second)
	v.SetDefault("sync.interval", 5*time.Minute)
	v.SetDefault("sync.low_stock_threshold", 5)
	v.SetDefault("theme.seed", "#6d28d9")
	v.SetDefault("theme.name", "cmsadmin")
}

// LoadConfig reads configuration with the following priority (highest first):
//  1. CMSADMIN_* environment variables (dots become underscores)
//  2. configFile, or cmsadmin.yaml in . or $HOME/.config/cmsadmin
//  3. Built-in defaults
func LoadConfig(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("cmsadmin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "cmsadmin"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file that is missing is an error; a missing default is not
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Env:            v.GetString("env"),
		LogLevel:       v.GetString("log.level"),
		LogFormat:      v.GetString("log.format"),
		CMSURL:         v.GetString("cms_url"),
		PlatformURL:    v.GetString("platform_url"),
		Tenant:         v.GetString("tenant"),
		RequestTimeout: v.GetDuration("request_timeout"),
		RateLimit:      v.GetFloat64("rate_limit.rps"),
		RateBurst:      v.GetInt("rate_limit.burst"),
		Store: StoreConfig{
			Driver:         strings.ToLower(v.GetString("store.driver")),
			Profile:        v.GetString("store.profile"),
			SQLitePath:     v.GetString("store.sqlite_path"),
			RedisURL:       v.GetString("store.redis_url"),
			PassphraseFile: v.GetString("store.passphrase_file"),
		},
		ServeAddr:           v.GetString("serve.addr"),
		ShutdownGracePeriod: v.GetDuration("serve.shutdown_grace_period"),
		SyncInterval:        v.GetDuration("sync.interval"),
		LowStockThreshold:   v.GetInt("sync.low_stock_threshold"),
		ThemeSeed:           v.GetString("theme.seed"),
		ThemeName:           v.GetString("theme.name"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case store.DriverMemory, store.DriverSQLite, store.DriverRedis:
	default:
		return fmt.Errorf("%w: %q", store.ErrUnknownDriver, c.Store.Driver)
	}
	if c.RateLimit < 0 {
		return errors.New("rate_limit.rps must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	return nil
}

// Endpoints resolves the API base URLs. Explicit URLs (flags or config)
// win over the environment.
func (c Config) Endpoints() runtimeconfig.Config {
	resolved := runtimeconfig.Resolve()
	if u := strings.TrimRight(strings.TrimSpace(c.CMSURL), "/"); u != "" {
		resolved.CMSAPIURL = u
	}
	if u := strings.TrimRight(strings.TrimSpace(c.PlatformURL), "/"); u != "" {
		resolved.PlatformAPIURL = u
	}
	return resolved
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cmsadmin-session.db"
	}
	return filepath.Join(dir, "cmsadmin", "session.db")
}
