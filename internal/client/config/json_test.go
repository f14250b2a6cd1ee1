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

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_endpoint_addr": "www.example:9000",
		"secret_key":           "shh",
		"token_ttl":            float64(90 * time.Second),
	})

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg, []string{"-config", path})

	assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
	assert.Equal(t, "shh", cfg.SecretKey)
	assert.Equal(t, 90*time.Second, cfg.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout, "absent keys keep defaults")
}

func Test_parseJson_NoFlag(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg, []string{"-a", "x"})
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
}

func Test_parseJson_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	var cfg Config
	assert.Panics(t, func() { parseJson(&cfg, []string{"-c", bad}) })
	assert.Panics(t, func() { parseJson(&cfg, []string{"-c", filepath.Join(dir, "missing.json")}) })
}
