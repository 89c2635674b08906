package rpc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 1234, config.Port)
	assert.Equal(t, 4, config.ThreadCount)
	assert.Equal(t, "server.config", config.PersistenceFile)
	assert.Equal(t, 10, config.DumpPeriod)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `# server settings
port=9000

thread_count=8
persistence_file=/tmp/state.db
dump_period=30
log_level=debug
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, config.Port)
	assert.Equal(t, 8, config.ThreadCount)
	assert.Equal(t, "/tmp/state.db", config.PersistenceFile)
	assert.Equal(t, 30, config.DumpPeriod)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "port=4321\n")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4321, config.Port)
	assert.Equal(t, 4, config.ThreadCount)
	assert.Equal(t, "server.config", config.PersistenceFile)
}

func TestLoadConfigIgnoresUnknownKeys(t *testing.T) {
	path := writeConfig(t, "port=4321\nsome_future_key=whatever\n")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4321, config.Port)
}

func TestLoadConfigMalformedLineFails(t *testing.T) {
	path := writeConfig(t, "port=4321\nthis line has no separator\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigBadNumberFails(t *testing.T) {
	path := writeConfig(t, "port=not-a-number\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFileFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.conf"))
	assert.Error(t, err)
}
