package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), settings)
	assert.Equal(t, 5*time.Second, settings.Cooldown())
	assert.Equal(t, 300*time.Second, settings.TimeLimit())
	assert.Equal(t, time.Second, settings.ScanInterval())
}

func TestLoadSettingsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cooldown_seconds: 10\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, settings.Cooldown())
	assert.Equal(t, 300*time.Second, settings.TimeLimit(), "unset fields keep defaults")
}

func TestLoadSettingsRejectsNonPositiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cooldown_seconds: -3\ntime_limit_seconds: 0\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cooldown_seconds: [nope"), 0o644))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestChannelIDRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channel.txt")

	id, err := LoadChannelID(path)
	require.NoError(t, err)
	assert.Empty(t, id, "missing file means not configured")

	require.NoError(t, SaveChannelID(path, "123456789"))

	id, err = LoadChannelID(path)
	require.NoError(t, err)
	assert.Equal(t, "123456789", id)

	require.NoError(t, ClearChannelID(path))

	id, err = LoadChannelID(path)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestLoadChannelIDSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channel.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n   \n  987654321  \nextra\n"), 0o644))

	id, err := LoadChannelID(path)
	require.NoError(t, err)
	assert.Equal(t, "987654321", id)
}

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{"SWEEPBOT_SETTINGS", "SWEEPBOT_CHANNEL_FILE", "SWEEPBOT_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	environment, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "settings.yaml", environment.SettingsPath)
	assert.Equal(t, "channel.txt", environment.ChannelFile)
	assert.Equal(t, "info", environment.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SWEEPBOT_SETTINGS", "/etc/sweepbot/settings.yaml")
	t.Setenv("SWEEPBOT_LOG_LEVEL", "debug")

	environment, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "/etc/sweepbot/settings.yaml", environment.SettingsPath)
	assert.Equal(t, "debug", environment.LogLevel)
}
