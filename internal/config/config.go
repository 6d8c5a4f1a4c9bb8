package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	ClickHouse ClickHouseConfig
	Kafka      KafkaConfig
	Auth       AuthConfig
	Catalog    CatalogConfig
}

type ServerConfig struct {
	Env            string        `envconfig:"ENV" default:"development"`
	Port           int           `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS"`
	ReadTimeout    time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout   time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout    time.Duration `envconfig:"IDLE_TIMEOUT" default:"1m"`
	RateLimit      int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"200"`
}

type DBConfig struct {
	URL          string `envconfig:"DB_URL" required:"true"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnectTries int    `envconfig:"DB_CONNECT_TRIES" default:"10"`
}

// RedisConfig is optional; an empty Addr disables the detail cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"1h"`
}

// ClickHouseConfig is optional; an empty URL keeps view events in Postgres.
type ClickHouseConfig struct {
	URL      string `envconfig:"CLICKHOUSE_URL"`
	Database string `envconfig:"CLICKHOUSE_DATABASE" default:"default"`
	Username string `envconfig:"CLICKHOUSE_USERNAME" default:"default"`
	Password string `envconfig:"CLICKHOUSE_PASSWORD"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"catalog-events"`
}

type AuthConfig struct {
	AdminAPIToken        string   `envconfig:"ADMIN_API_TOKEN"`
	AdminEmails          []string `envconfig:"ADMIN_EMAILS"`
	GoogleClientID       string   `envconfig:"GOOGLE_CLIENT_ID_ADMIN"`
	GoogleClientSecret   string   `envconfig:"GOOGLE_CLIENT_SECRET_ADMIN"`
	BackendURL           string   `envconfig:"BACKEND_URL" default:"http://localhost:8080"`
	AdminFrontendURL     string   `envconfig:"ADMIN_FRONTEND_URL" default:"http://localhost:3000"`
	SessionAuthKey       string   `envconfig:"SESSION_AUTH_KEY"`
	SessionEncryptionKey string   `envconfig:"SESSION_ENCRYPTION_KEY"`
}

type CatalogConfig struct {
	DefaultPageSize       int           `envconfig:"DEFAULT_PAGE_SIZE" default:"8"`
	DetailPageSize        int           `envconfig:"DETAIL_PAGE_SIZE" default:"12"`
	MaxPageSize           int           `envconfig:"MAX_PAGE_SIZE" default:"100"`
	ViewAggregateInterval time.Duration `envconfig:"VIEW_AGGREGATE_INTERVAL" default:"1m"`
}

func (c *ServerConfig) Production() bool {
	return c.Env == "production"
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Enabled reports whether write routes require an admin.
func (c *AuthConfig) Enabled() bool {
	return c.AdminAPIToken != "" || c.GoogleClientID != ""
}

func (c *AuthConfig) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

// Load reads a .env file when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	sections := []struct {
		name string
		dst  interface{}
	}{
		{"server", &cfg.Server},
		{"db", &cfg.DB},
		{"redis", &cfg.Redis},
		{"clickhouse", &cfg.ClickHouse},
		{"kafka", &cfg.Kafka},
		{"auth", &cfg.Auth},
		{"catalog", &cfg.Catalog},
	}

	for _, s := range sections {
		if err := envconfig.Process("", s.dst); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", s.name, err)
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DB.URL == "" {
		return errors.New("DB_URL is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("PORT must be between 1 and 65535")
	}
	if c.Server.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Catalog.DefaultPageSize <= 0 || c.Catalog.DetailPageSize <= 0 {
		return errors.New("page sizes must be positive")
	}
	if c.Catalog.MaxPageSize < c.Catalog.DefaultPageSize || c.Catalog.MaxPageSize < c.Catalog.DetailPageSize {
		return errors.New("MAX_PAGE_SIZE must not be below the default page sizes")
	}
	if c.Catalog.ViewAggregateInterval < 0 {
		return errors.New("VIEW_AGGREGATE_INTERVAL cannot be negative")
	}
	if c.Redis.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	if c.Auth.GoogleClientID != "" && c.Auth.GoogleClientSecret == "" {
		return errors.New("GOOGLE_CLIENT_SECRET_ADMIN is required when GOOGLE_CLIENT_ID_ADMIN is set")
	}
	if c.Auth.GoogleClientID != "" && len(c.Auth.AdminEmails) == 0 {
		return errors.New("ADMIN_EMAILS is required when admin login is enabled")
	}
	return nil
}
