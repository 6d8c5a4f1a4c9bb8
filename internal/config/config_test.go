package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/provideo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/provideo", cfg.DB.URL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 200, cfg.Server.RateLimit)
	assert.Equal(t, 8, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 12, cfg.Catalog.DetailPageSize)
	assert.Equal(t, 100, cfg.Catalog.MaxPageSize)
	assert.Equal(t, time.Minute, cfg.Catalog.ViewAggregateInterval)
	assert.Equal(t, time.Hour, cfg.Redis.CacheTTL)
	assert.Equal(t, "catalog-events", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.ClickHouse.URL)
	assert.False(t, cfg.Auth.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingDBURL(t *testing.T) {
	t.Setenv("DB_URL", "placeholder")
	require.NoError(t, os.Unsetenv("DB_URL"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Lists(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/provideo")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,https://provideo.com")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("ADMIN_EMAILS", "ops@provideo.com, Editor@provideo.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://provideo.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Auth.IsAdminEmail("ops@provideo.com"))
	assert.True(t, cfg.Auth.IsAdminEmail("editor@provideo.com"))
	assert.False(t, cfg.Auth.IsAdminEmail("someone@else.com"))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080, RateLimit: 200},
			DB:      DBConfig{URL: "postgres://localhost/provideo"},
			Redis:   RedisConfig{CacheTTL: time.Hour},
			Catalog: CatalogConfig{DefaultPageSize: 8, DetailPageSize: 12, MaxPageSize: 100},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "PORT"},
		{"zero rate limit", func(c *Config) { c.Server.RateLimit = 0 }, "RATE_LIMIT_PER_MINUTE"},
		{"max below default", func(c *Config) { c.Catalog.MaxPageSize = 4 }, "MAX_PAGE_SIZE"},
		{"negative interval", func(c *Config) { c.Catalog.ViewAggregateInterval = -time.Second }, "VIEW_AGGREGATE_INTERVAL"},
		{"google without secret", func(c *Config) { c.Auth.GoogleClientID = "id" }, "GOOGLE_CLIENT_SECRET_ADMIN"},
		{"google without admins", func(c *Config) {
			c.Auth.GoogleClientID = "id"
			c.Auth.GoogleClientSecret = "secret"
		}, "ADMIN_EMAILS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
