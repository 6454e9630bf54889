// Package config loads the process configuration from environment variables
// once at startup. Business logic receives it by reference and never reads
// the environment itself.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full configuration surface of the service.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Database (PostgreSQL).
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"sejong_catch"`
	// RunMigrations enables AutoMigrate plus the admin seed on startup.
	RunMigrations bool `env:"RUN_MIGRATIONS"`

	// SSO portal. The fallback is used only when explicitly configured and
	// distinct from the primary.
	SSOBaseURL     string `env:"AUTH_SSO_BASE_URL"`
	SSOFallbackURL string `env:"AUTH_SSO_BASE_URL_FALLBACK"`
	SSOTimeoutMS   int    `env:"AUTH_SSO_TIMEOUT_MS" envDefault:"5000"`

	// Password hashing.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// Token signing. Both secrets are mandatory; startup fails without them.
	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	JWTAccessTTL     time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	JWTRefreshTTL    time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
	JWTIssuer        string        `env:"JWT_ISSUER" envDefault:"sejong-catch-auth"`
	JWTAudience      string        `env:"JWT_AUDIENCE" envDefault:"sejong-catch-api"`

	// Redis-backed login rate limiting. Leaving RedisAddr empty disables it.
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`

	// Admin seed (applied with RUN_MIGRATIONS).
	SeedAdminUsername string `env:"SEED_ADMIN_USERNAME" envDefault:"admin"`
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@sejong.test"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// SSOTimeout returns the per-attempt portal timeout as a duration.
func (c *Config) SSOTimeout() time.Duration {
	return time.Duration(c.SSOTimeoutMS) * time.Millisecond
}
