package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultFilterParams are redacted from request logs when LOG_FILTER_PARAMS
// is unset.
var DefaultFilterParams = []string{
	"passw", "secret", "token", "_key", "crypt", "salt",
	"certificate", "auth", "session", "cookie", "ssn", "phone_number",
}

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL"`

	Auth  AuthConfig
	Log   LogConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET, required"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL, default=20m"`

	// LoginRatePerMinute caps login attempts per client IP; 0 disables it.
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE, default=10"`
}

type LogConfig struct {
	FilterParams []string `env:"LOG_FILTER_PARAMS"`

	// File, when set, also writes logs to a size-rotated file.
	File      string `env:"LOG_FILE"`
	MaxSizeMB int    `env:"LOG_FILE_MAX_SIZE_MB, default=100"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=todo_service"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB,        default=0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE, default=10"`
	TodoCacheTTL time.Duration `env:"TODO_CACHE_TTL,  default=60s"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if len(cfg.Log.FilterParams) == 0 {
		cfg.Log.FilterParams = append([]string(nil), DefaultFilterParams...)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if c.Audit.Workers <= 0 {
		return errors.New("AUDIT_WORKERS must be positive")
	}
	return nil
}
