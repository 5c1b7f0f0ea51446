// Package config loads netweave settings from defaults, an optional TOML
// file and NETWEAVE_* environment variables, in increasing precedence.
//
//	dialect = "spice"
//
//	[cache]
//	dir = "/tmp/netweave"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//
// Nested keys map to variables with underscores: NETWEAVE_CACHE_REDIS_ADDR
// sets cache.redis_addr.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/writer"
)

const (
	// AppName is the application name.
	AppName = "netweave"
	// ConfigFileName is the config file name inside [Dir].
	ConfigFileName = "config.toml"
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "NETWEAVE"
)

// Config holds all settings.
type Config struct {
	Dialect string       `mapstructure:"dialect"`
	Cache   CacheConfig  `mapstructure:"cache"`
	Server  ServerConfig `mapstructure:"server"`
	Store   StoreConfig  `mapstructure:"store"`
}

// CacheConfig selects the artifact cache. A non-empty RedisAddr selects
// Redis over the file cache.
type CacheConfig struct {
	Disabled  bool          `mapstructure:"disabled"`
	Dir       string        `mapstructure:"dir"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StoreConfig selects the circuit store. An empty MongoURI keeps circuits
// in memory.
type StoreConfig struct {
	MongoURI string `mapstructure:"mongo_uri"`
	Database string `mapstructure:"database"`
}

// LoadOptions controls where [Load] looks for the config file.
type LoadOptions struct {
	// ConfigFilePath, when set, must exist and is used exclusively.
	ConfigFilePath string
	// ConfigDirPath overrides [Dir].
	ConfigDirPath string
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return &Config{
		Dialect: "spectre",
		Cache: CacheConfig{
			Dir: filepath.Join(cacheDir, AppName),
			TTL: 7 * 24 * time.Hour,
		},
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Database: AppName},
	}
}

// Dir returns the configuration directory ($XDG_CONFIG_HOME/netweave or
// the platform equivalent).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Load resolves the configuration. It returns the path of the file that was
// read, or "" when none was found.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load config canceled: %w", err)
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("dialect", defaults.Dialect)
	v.SetDefault("cache.disabled", defaults.Cache.Disabled)
	v.SetDefault("cache.dir", defaults.Cache.Dir)
	v.SetDefault("cache.redis_addr", defaults.Cache.RedisAddr)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("store.mongo_uri", defaults.Store.MongoURI)
	v.SetDefault("store.database", defaults.Store.Database)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolvePath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, path, nil
}

// Validate checks values that cannot be expressed as defaults.
func (c *Config) Validate() error {
	if _, err := writer.ForDialect(c.Dialect); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

func resolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if _, err := os.Stat(opts.ConfigFilePath); err != nil {
			return "", errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", opts.ConfigFilePath)
		}
		return opts.ConfigFilePath, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		d, err := Dir()
		if err != nil {
			return "", nil
		}
		dir = d
	}
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}
