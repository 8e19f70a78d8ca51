package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", s.Host)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, "configs", s.ConfigDir)
	assert.Equal(t, StoreFile, s.Store)
	assert.Equal(t, "maze:session:", s.RedisPrefix)
	assert.Equal(t, 24*time.Hour, s.SessionTTL)
	assert.Equal(t, time.Hour, s.CleanupInterval)
	assert.False(t, s.NgrokEnabled)
	assert.Equal(t, "localhost:8080", s.Addr())
}

func TestLoadSettingsFromEnvironment(t *testing.T) {
	t.Setenv("MAZE_PORT", "9090")
	t.Setenv("MAZE_STORE", "redis")
	t.Setenv("MAZE_SESSION_TTL", "30m")
	t.Setenv("NGROK_ENABLED", "true")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 9090, s.Port)
	assert.Equal(t, StoreRedis, s.Store)
	assert.Equal(t, 30*time.Minute, s.SessionTTL)
	assert.True(t, s.NgrokEnabled)
}

func TestLoadSettingsDotenv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("MAZE_LOG_LEVEL=debug\n"), 0644))
	// godotenv writes to the process environment; t.Setenv restores it afterwards.
	t.Setenv("MAZE_LOG_LEVEL", "")
	os.Unsetenv("MAZE_LOG_LEVEL")

	s, err := LoadSettings(dotenv)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadSettingsEnvironmentWinsOverDotenv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("MAZE_PORT=7000\n"), 0644))
	t.Setenv("MAZE_PORT", "7100")

	s, err := LoadSettings(dotenv)
	require.NoError(t, err)
	assert.Equal(t, 7100, s.Port)
}

func TestLoadSettingsMalformedDotenv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("MAZE-HOST=example.com\n"), 0644))

	_, err := LoadSettings(dotenv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dotenv)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("MAZE_PORT", "not-an-int")

	var s Settings
	err := ParseEnv(&s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestSettingsValidate(t *testing.T) {
	t.Setenv("MAZE_STORE", "postgres")

	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAZE_STORE")
}
