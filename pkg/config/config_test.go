package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quadm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 512<<20, cfg.Client.MaxContentLength)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
client:
  timeout: 5s
  max_content_length: 1048576
logging:
  level: DEBUG
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 1<<20, cfg.Client.MaxContentLength)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	// Untouched keys keep defaults.
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("QUADM_CLIENT_TIMEOUT", "2s")
	t.Setenv("QUADM_LOGGING_LEVEL", "ERROR")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
}

func TestLoadMissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "client: [not: a: map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("NegativeTimeout", func(t *testing.T) {
		cfg := Default()
		cfg.Client.Timeout = -time.Second
		assert.Error(t, Validate(cfg))
	})

	t.Run("ZeroMaxContentLength", func(t *testing.T) {
		cfg := Default()
		cfg.Client.MaxContentLength = 0
		assert.Error(t, Validate(cfg))
	})

	t.Run("BadLevel", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "LOUD"
		assert.Error(t, Validate(cfg))
	})

	t.Run("BadFormat", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Format = "xml"
		assert.Error(t, Validate(cfg))
	})
}
