package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, time.Hour, c.TokenTTL)
	assert.Equal(t, uint32(20), c.DefaultPageSize)
	assert.Equal(t, uint32(100), c.MaxPageSize)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, int64(1<<20), c.MaxBodyBytes)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("DEFAULT_PAGE_SIZE", "10")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, uint32(10), cfg.DefaultPageSize)
	// untouched variables keep their defaults
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
}
