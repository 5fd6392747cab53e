package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every variable read by Load.
const EnvPrefix = "TOBACCO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	JWT      JWTConfig
	Fixtures FixturesConfig
}

type AppConfig struct {
	Env      string `envconfig:"TOBACCO_APP_ENV" default:"dev"`
	Port     string `envconfig:"TOBACCO_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"TOBACCO_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Addr is the listen address for the HTTP server.
func (a AppConfig) Addr() string {
	return ":" + strings.TrimPrefix(a.Port, ":")
}

type JWTConfig struct {
	Secret            string `envconfig:"TOBACCO_JWT_SECRET"`
	Issuer            string `envconfig:"TOBACCO_JWT_ISSUER" default:"tobacco-auction"`
	ExpirationMinutes int    `envconfig:"TOBACCO_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TTL is the lifetime of minted tokens.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FixturesConfig struct {
	Seed bool `envconfig:"TOBACCO_SEED_FIXTURES" default:"true"`
}

// Load reads an optional .env file, then the process environment.
// PORT, when set, overrides TOBACCO_APP_PORT.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if p := os.Getenv("PORT"); p != "" {
		cfg.App.Port = p
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		if c.App.IsProd() {
			return fmt.Errorf("TOBACCO_JWT_SECRET is required in %s", AppEnvProd)
		}
		c.JWT.Secret = "dev-secret-change-me"
	}
	if c.JWT.ExpirationMinutes <= 0 {
		return fmt.Errorf("TOBACCO_JWT_EXPIRATION_MINUTES must be positive, got %d", c.JWT.ExpirationMinutes)
	}
	return nil
}
