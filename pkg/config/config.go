package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Prefix of every environment variable read by the configuration.
// Nested keys are separated by a double underscore, e.g. STATSDB_CACHE__MAX_ENTRIES.
const envPrefix = "STATSDB_"

// HTTP server configuration.
type ServerConfiguration struct {
	Addr string `koanf:"addr"`
	Mode string `koanf:"mode"`
}

// Database configuration.
type DatabaseConfiguration struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

// Redis configuration struct.
type RedisConfiguration struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// In memory result cache configuration.
type CacheConfiguration struct {
	MaxEntries int `koanf:"max_entries"`
}

// Limits for the day window accepted by the ranking endpoints.
type RankingsConfiguration struct {
	DefaultDays int `koanf:"default_days"`
	MaxDays     int `koanf:"max_days"`
}

// Log output configuration.
// File logging is disabled when Dir is empty.
type LogConfiguration struct {
	Level      string `koanf:"level"`
	Dir        string `koanf:"dir"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// Bucket used to archive the log files.
// Archiving is disabled when LogBucket is empty.
type BucketConfiguration struct {
	Region       string `koanf:"region"`
	Endpoint     string `koanf:"endpoint"`
	AccessKey    string `koanf:"access_key"`
	AccessSecret string `koanf:"access_secret"`
	LogBucket    string `koanf:"log_bucket"`
}

type Config struct {
	Server   ServerConfiguration   `koanf:"server"`
	Database DatabaseConfiguration `koanf:"database"`
	Redis    RedisConfiguration    `koanf:"redis"`
	Cache    CacheConfiguration    `koanf:"cache"`
	Rankings RankingsConfiguration `koanf:"rankings"`
	Log      LogConfiguration      `koanf:"log"`
	Bucket   BucketConfiguration   `koanf:"bucket"`
}

// New returns the configuration with every default set.
func New() *Config {
	return &Config{
		Server: ServerConfiguration{
			Addr: ":8080",
			Mode: "release",
		},
		Database: DatabaseConfiguration{
			Driver:          "sqlite",
			DSN:             "stats.db",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
		},
		Redis: RedisConfiguration{
			Host: "localhost",
			Port: "6379",
		},
		Cache: CacheConfiguration{
			MaxEntries: 1024,
		},
		Rankings: RankingsConfiguration{
			DefaultDays: 30,
			MaxDays:     3650,
		},
		Log: LogConfiguration{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Load the configuration.
// Precedence, lowest first: defaults, YAML file from STATSDB_CONFIG, environment.
func Load() (*Config, error) {
	// Load the .env file if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("couldn't load the .env file: %w", err)
		}
	}

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("couldn't load the config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("couldn't load the environment: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("couldn't parse the configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that would make the service fail later on.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server addr must not be empty")
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return errors.New("database dsn must not be empty")
	}

	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache max_entries must be positive, got %d", c.Cache.MaxEntries)
	}

	if c.Rankings.MaxDays < 0 || c.Rankings.DefaultDays < 0 || c.Rankings.DefaultDays > c.Rankings.MaxDays {
		return fmt.Errorf("invalid rankings days: default=%d max=%d", c.Rankings.DefaultDays, c.Rankings.MaxDays)
	}

	return nil
}

// Address of the redis server.
func (r RedisConfiguration) Addr() string {
	return r.Host + ":" + r.Port
}
