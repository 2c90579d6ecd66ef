package loader

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/resource-loader/pkg/aggregate"
	"github.com/Sternrassler/resource-loader/pkg/storage"
)

// Backend selects the storage a loader reads from.
type Backend string

const (
	// BackendFile reads <RootDir>/<name><Suffix>.
	BackendFile Backend = storage.BackendFile

	// BackendRedis reads JSON entries under <RedisPrefix>:<name>.
	BackendRedis Backend = storage.BackendRedis

	// BackendHTTP reads <BaseURL>/<name><Suffix>.
	BackendHTTP Backend = storage.BackendHTTP

	// BackendMemory serves Seed.
	BackendMemory Backend = storage.BackendMemory
)

// Config holds the loader configuration.
type Config struct {
	// Backend selects the storage backend
	Backend Backend

	// File backend
	RootDir string
	Suffix  string // also used by the HTTP backend; "-" for none

	// Redis backend. Redis, when set, is used instead of dialing RedisAddr
	// and is not closed by the loader.
	Redis       *redis.Client
	RedisAddr   string
	RedisDB     int
	RedisPrefix string

	// HTTP backend
	BaseURL     string
	HTTPTimeout time.Duration
	UserAgent   string

	// Memory backend
	Seed map[string]string

	// Duplicates selects which success is kept for a repeated name
	Duplicates aggregate.DuplicatePolicy
}

// DefaultConfig returns the default configuration: text files below ./files.
func DefaultConfig() Config {
	return Config{
		Backend:     BackendFile,
		RootDir:     "files",
		Suffix:      storage.DefaultSuffix,
		RedisAddr:   "localhost:6379",
		RedisPrefix: storage.DefaultRedisPrefix,
		HTTPTimeout: 30 * time.Second,
		UserAgent:   storage.DefaultUserAgent,
		Duplicates:  aggregate.LastWins,
	}
}

// ConfigFromEnv overlays environment variables on DefaultConfig.
//
//	LOADER_BACKEND       file | redis | http | memory
//	LOADER_ROOT_DIR      file backend root directory
//	LOADER_SUFFIX        appended to names ("-" for none)
//	REDIS_URL            redis address (host:port)
//	REDIS_DB             redis database number
//	LOADER_REDIS_PREFIX  redis key prefix
//	LOADER_BASE_URL      http backend base URL
//	LOADER_HTTP_TIMEOUT  http request timeout (Go duration)
//	LOADER_USER_AGENT    http User-Agent
//	LOADER_DUPLICATES    last | first
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.Backend = Backend(getEnv("LOADER_BACKEND", string(cfg.Backend)))
	cfg.RootDir = getEnv("LOADER_ROOT_DIR", cfg.RootDir)
	cfg.Suffix = getEnv("LOADER_SUFFIX", cfg.Suffix)
	cfg.RedisAddr = getEnv("REDIS_URL", cfg.RedisAddr)
	cfg.RedisPrefix = getEnv("LOADER_REDIS_PREFIX", cfg.RedisPrefix)
	cfg.BaseURL = getEnv("LOADER_BASE_URL", cfg.BaseURL)
	cfg.UserAgent = getEnv("LOADER_USER_AGENT", cfg.UserAgent)

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if v := os.Getenv("LOADER_HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("parse LOADER_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = timeout
	}

	duplicates, err := aggregate.ParseDuplicatePolicy(os.Getenv("LOADER_DUPLICATES"))
	if err != nil {
		return cfg, fmt.Errorf("parse LOADER_DUPLICATES: %w", err)
	}
	cfg.Duplicates = duplicates

	return cfg, nil
}

// Validate checks that the configuration selects a usable backend.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.RootDir == "" {
			return fmt.Errorf("root_dir is required for the file backend")
		}
	case BackendRedis:
		if c.Redis == nil && c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis backend")
		}
		if c.RedisDB < 0 {
			return fmt.Errorf("redis_db must be >= 0 (got %d)", c.RedisDB)
		}
	case BackendHTTP:
		if c.BaseURL == "" {
			return fmt.Errorf("base_url is required for the http backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if _, err := aggregate.ParseDuplicatePolicy(string(c.Duplicates)); err != nil {
		return err
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
