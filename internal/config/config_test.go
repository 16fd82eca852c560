package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.08, cfg.Store.TaxRate)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, "seed", cfg.Catalog.Source)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_TAX_RATE", "0.2")
	t.Setenv("STORE_SHIPPING_COST", "4.99")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")

	cfg := FromEnv()

	assert.Equal(t, 0.2, cfg.Store.TaxRate)
	assert.Equal(t, 4.99, cfg.Store.ShippingCost)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
	assert.Equal(t, "localhost:6380", cfg.GetRedisAddr())
}

func TestFromEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("STORE_TAX_RATE", "eight percent")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	cfg := FromEnv()

	assert.Equal(t, 0.08, cfg.Store.TaxRate)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "JWT_SECRET"},
		{"tax above one", func(c *Config) { c.Store.TaxRate = 1.5 }, "STORE_TAX_RATE"},
		{"negative shipping", func(c *Config) { c.Store.ShippingCost = -1 }, "STORE_SHIPPING_COST"},
		{"redis sessions without redis", func(c *Config) { c.Session.Backend = "redis" }, "REDIS_ENABLED"},
		{"unknown session backend", func(c *Config) { c.Session.Backend = "disk" }, "SESSION_BACKEND"},
		{"postgres catalog without db", func(c *Config) { c.Catalog.Source = "postgres" }, "DB_ENABLED"},
		{"unknown catalog source", func(c *Config) { c.Catalog.Source = "csv" }, "CATALOG_SOURCE"},
		{"db without host", func(c *Config) { c.Database.Enabled = true; c.Database.Host = "" }, "DB_HOST"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "APP_PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromEnv()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := FromEnv()
	assert.Equal(t,
		"host=localhost port=5432 user=storefront_user password=storefront_password dbname=storefront_db sslmode=disable",
		cfg.GetDatabaseDSN())
}
