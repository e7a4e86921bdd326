package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":9091", cfg.HTTP.Addr)
	assert.Equal(t, BackendBadger, cfg.Storage.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Export.SettleDelay)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "serviq.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
http:
  addr: ":8080"
storage:
  backend: memory
export:
  settle_delay: 0s
`), 0o644))
	t.Setenv("SERVIQ_AI_API_KEY", "secret")
	t.Setenv("SERVIQ_HTTP_ADDR", ":7070")

	cfg, err := Load(New(), file)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, time.Duration(0), cfg.Export.SettleDelay)
	assert.Equal(t, "secret", cfg.AI.APIKey)
}

func TestValidate(t *testing.T) {
	cases := map[string]Config{
		"unknown backend": {Storage: Storage{Backend: "sqlite"}, Export: Export{Format: "png"}},
		"postgres no dsn": {Storage: Storage{Backend: BackendPostgres}, Export: Export{Format: "png"}},
		"bad format":      {Storage: Storage{Backend: BackendMemory}, Export: Export{Format: "gif"}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
