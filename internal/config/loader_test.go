package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_MissingFileReturnsDefaults(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, 1000, cfg.Limits.MaxInputLength)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.Logging.File)
}

func TestLoader_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "senthrix.json")
	content := `{
		"data_dir": "` + dir + `",
		"storage": {"backend": "sqlite"},
		"limits": {"max_input_length": 200, "max_messages_per_chat": 10},
		"responder": {"min_delay_ms": 5, "max_delay_ms": 10}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 200, cfg.Limits.MaxInputLength)
	assert.Equal(t, 10, cfg.Limits.MaxMessagesPerChat)
	assert.Equal(t, 5, cfg.Responder.MinDelayMs)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "senthrix.log"), cfg.Logging.File)
}

func TestLoader_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "senthrix.json")
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0600))

	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestLoader_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "senthrix.json")
	content := `{"storage": {"backend": "redis"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}
