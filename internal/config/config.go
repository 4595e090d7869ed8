// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bookshelf/internal/platform/database"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds every setting of the service.
type Config struct {
	DatabaseURL      string        `env:"DATABASE_URL,required"`
	Addr             string        `env:"APP_ADDR,default=:3001"`
	DBMaxConns       int           `env:"DB_MAX_CONNS,default=10"`
	DBConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT,default=5s"`
	DBQueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT,default=5s"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	MaxBodyBytes       int64   `env:"MAX_BODY_BYTES,default=1048576"`
	RateLimitRPS       float64 `env:"RATE_LIMIT_RPS,default=50"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST,default=100"`
	CORSAllowedOrigins string  `env:"CORS_ALLOWED_ORIGINS"`
	EnableHSTS         bool    `env:"ENABLE_HSTS,default=false"`
	TrustProxyHeaders  bool    `env:"TRUST_PROXY_HEADERS,default=false"`

	// SeedSampleData is empty when unset; see SeedOnStartup.
	SeedSampleData string `env:"SEED_SAMPLE_DATA"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// LoadEnvFiles reads .env and .env.local. Variables already present in the
// process environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load decodes the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.DBMaxConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_CONNS must be positive"))
	}
	if c.DBQueryTimeout <= 0 {
		errs = append(errs, errors.New("DB_QUERY_TIMEOUT must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("rate limit settings must not be negative"))
	}
	if c.SeedSampleData != "" {
		if _, err := strconv.ParseBool(c.SeedSampleData); err != nil {
			errs = append(errs, errors.New("SEED_SAMPLE_DATA must be a boolean"))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// SeedOnStartup reports whether the service inserts the sample catalogue after
// migrating. Unset, it is on for in-memory databases only.
func (c Config) SeedOnStartup() bool {
	if c.SeedSampleData == "" {
		return database.IsInMemory(c.DatabaseURL)
	}
	seed, _ := strconv.ParseBool(c.SeedSampleData)
	return seed
}

// Database returns the pool settings every command opens the store with.
func (c Config) Database() database.Config {
	return database.Config{
		URL:            c.DatabaseURL,
		MaxConns:       c.DBMaxConns,
		ConnectTimeout: c.DBConnectTimeout,
	}
}
