package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every environment-provided setting. The signing secret is
// required: the process refuses to start without it rather than serve
// unsigned sessions.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret        string        `env:"JWT_SECRET_KEY, required"`
	TokenTTL         time.Duration `env:"JWT_EXPIRES,        default=168h"`
	CookieExpireDays int           `env:"COOKIE_EXPIRE_DAYS, default=7"`

	FrontendURL  string `env:"FRONTEND_URL,  default=http://localhost:5173"`
	DashboardURL string `env:"DASHBOARD_URL, default=http://localhost:3000"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital_management"`
}

// RedisConfig is optional: an empty Addr disables the token denylist and the
// Redis readiness check.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the process runs in production mode. It gates
// Secure cookies and strips diagnostic detail from error responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// CookieTTL converts the day-based cookie setting to a duration. It is
// deliberately independent from TokenTTL; the shorter of the two bounds the
// effective session.
func (c *Config) CookieTTL() time.Duration {
	return time.Duration(c.CookieExpireDays) * 24 * time.Hour
}

// AllowOrigins lists the origins allowed to send credentialed requests.
func (c *Config) AllowOrigins() []string {
	return []string{c.FrontendURL, c.DashboardURL}
}
