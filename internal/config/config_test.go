package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://ec-course-api.hexschool.io/v2", cfg.API.Base)
	assert.Equal(t, "shopcli", cfg.API.Path)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yml := []byte("api:\n  base: https://shop.example.com/v2\n  path: keyboards\n  timeout_seconds: 5\nlogger:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), yml, 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/v2", cfg.API.Base)
	assert.Equal(t, "keyboards", cfg.API.Path)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout())
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadFrom_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	yml := []byte("api:\n  path: from-file\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), yml, 0o644))
	t.Setenv("SHOPCLI_API_PATH", "from-env")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Path)
}

func TestLoadFrom_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("api: ["), 0o644))

	_, err := LoadFrom(dir)
	assert.Error(t, err)
}

func TestAPIConfig_Timeout_Zero(t *testing.T) {
	assert.Equal(t, time.Duration(0), APIConfig{TimeoutSeconds: 0}.Timeout())
}
