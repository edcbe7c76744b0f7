package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"

	"github.com/langkawi/directory-access/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Project ProjectConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	JWTSecret   string   `env:"JWT_SECRET, required"`
	AccessTTL   Lifetime `env:"JWT_EXPIRES_IN,         default=7d"`
	RefreshTTL  Lifetime `env:"JWT_REFRESH_EXPIRES_IN, default=30d"`
	BcryptCost  int      `env:"BCRYPT_SALT_ROUNDS,     default=12"`
	HashWorkers int      `env:"HASH_WORKERS,           default=0"`
}

type ProjectConfig struct {
	// Preset selects a named preset at startup; empty keeps the default.
	Preset string `env:"PROJECT_PRESET"`
	// File loads the configuration from a YAML/JSON file instead.
	File string `env:"PROJECT_CONFIG_FILE"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=directory_access"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Channel  string `env:"CONFIG_CHANNEL, default=directory:project-config"`
}

// Load reads configuration from environment variables using go-envconfig.
// A missing JWT_SECRET or an out-of-range bcrypt cost is a configuration
// error; callers are expected to refuse to start.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: BCRYPT_SALT_ROUNDS must be between %d and %d", domain.ErrConfiguration, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Project.Preset != "" && c.Project.File != "" {
		return fmt.Errorf("%w: PROJECT_PRESET and PROJECT_CONFIG_FILE are mutually exclusive", domain.ErrConfiguration)
	}
	if c.Project.Preset != "" {
		if _, ok := domain.Preset(c.Project.Preset); !ok {
			return fmt.Errorf("%w: %w %q", domain.ErrConfiguration, domain.ErrUnknownPreset, c.Project.Preset)
		}
	}
	return nil
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
