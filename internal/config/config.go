package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Security SecurityConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name      string `env:"APP_NAME" env-default:"Simon Tech Solutions API"`
	Version   string `env:"APP_VERSION" env-default:"1.0.0"`
	Debug     bool   `env:"DEBUG" env-default:"false"`
	Port      string `env:"PORT" env-default:"5000"`
	Host      string `env:"HOST" env-default:"0.0.0.0"`
	StaticDir string `env:"STATIC_DIR" env-default:"dist/public"`
}

// DatabaseConfig holds PostgreSQL configuration. URL, when set, takes
// precedence over the individual PG* fields.
type DatabaseConfig struct {
	URL            string        `env:"DATABASE_URL"`
	Host           string        `env:"PGHOST" env-default:"localhost"`
	Port           int           `env:"PGPORT" env-default:"5432"`
	User           string        `env:"PGUSER" env-default:"postgres"`
	Password       string        `env:"PGPASSWORD"`
	Database       string        `env:"PGDATABASE" env-default:"simontechsolutions"`
	SSLMode        string        `env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int           `env:"PGMAX_CONNECTIONS" env-default:"25"`
	MaxIdleConns   int           `env:"PGMAX_IDLE_CONNS" env-default:"5"`
	ConnectTimeout time.Duration `env:"PGCONNECT_TIMEOUT" env-default:"5s"`
	QueryTimeout   time.Duration `env:"PGQUERY_TIMEOUT" env-default:"5s"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	MaxAge         int      `env:"CORS_MAX_AGE" env-default:"86400"`
}

// SecurityConfig holds response hardening options
type SecurityConfig struct {
	// CSPDefaultSrc enables a Content-Security-Policy header when non-empty.
	CSPDefaultSrc []string `env:"CSP_DEFAULT_SRC" env-separator:","`
}

// Load loads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if _, err := strconv.Atoi(cfg.App.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", cfg.App.Port)
	}
	if cfg.App.StaticDir == "" {
		return fmt.Errorf("STATIC_DIR must be set")
	}
	if cfg.Database.URL == "" && cfg.Database.Host == "" {
		return fmt.Errorf("PGHOST or DATABASE_URL must be set")
	}
	if cfg.Database.MaxConnections <= 0 {
		return fmt.Errorf("PGMAX_CONNECTIONS must be greater than 0")
	}
	if cfg.Database.MaxIdleConns < 0 || cfg.Database.MaxIdleConns > cfg.Database.MaxConnections {
		return fmt.Errorf("PGMAX_IDLE_CONNS must be between 0 and PGMAX_CONNECTIONS")
	}
	if cfg.Database.QueryTimeout <= 0 {
		return fmt.Errorf("PGQUERY_TIMEOUT must be greater than 0")
	}
	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *AppConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// DSN returns the connection string handed to the PostgreSQL driver.
// Built as a URL so that credentials containing spaces or quotes survive.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}

	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if secs := int(c.ConnectTimeout / time.Second); secs > 0 {
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// Redacted returns a loggable description of the target database.
func (c *DatabaseConfig) Redacted() string {
	if c.URL != "" {
		if u, err := url.Parse(c.URL); err == nil {
			return u.Redacted()
		}
		return "DATABASE_URL"
	}
	return fmt.Sprintf("%s@%s:%d/%s", c.User, c.Host, c.Port, c.Database)
}

// AllowsAnyOrigin reports whether CORS is left open to every origin.
func (c *CORSConfig) AllowsAnyOrigin() bool {
	for _, origin := range c.AllowedOrigins {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}
