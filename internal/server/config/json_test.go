package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overlays present fields only", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"endpoint_addr_grpc": ":6000",
			"token_ttl":          "2h",
			"max_page_size":      50,
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":6000", cfg.EndpointAddrGRPC)
		assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
		assert.Equal(t, uint32(50), cfg.MaxPageSize)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "keep:1"}
		parseJson(cfg)

		assert.Equal(t, "keep:1", cfg.EndpointAddrHTTP)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"testbin", "-c", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
