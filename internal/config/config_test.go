package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patience", "config.toml")

	config, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	assert.FileExists(t, path)

	assert.Equal(t, 500*time.Millisecond, config.LossCheckDelay())
	assert.Equal(t, time.Second, config.TickInterval())
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[game]\nseed = 99\n"), 0644))

	config, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), config.Game.Seed)
	assert.Equal(t, 500, config.Game.LossCheckDelayMS)
	assert.True(t, config.Display.Color)
	assert.Equal(t, ":8080", config.Server.Addr)
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[game\n"), 0644))

	_, err := LoadConfigFrom(path)
	assert.ErrorContains(t, err, "error decoding config file")
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{key: "game.loss_check_delay_ms", value: "250"},
		{key: "game.tick_interval_ms", value: "0", wantErr: true},
		{key: "game.seed", value: "-4"},
		{key: "game.strict_invariants", value: "true"},
		{key: "display.color", value: "maybe", wantErr: true},
		{key: "display.hints", value: "false"},
		{key: "server.addr", value: "127.0.0.1:9000"},
		{key: "server.addr", value: " ", wantErr: true},
		{key: "game.speed", value: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			config := Default()
			err := config.Set(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, Default(), config, "rejected value must not change the config")
				return
			}
			require.NoError(t, err)

			got, err := config.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSetValuePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, SetValue(path, "game.seed", "1234"))
	require.NoError(t, SetValue(path, "display.color", "false"))

	config, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), config.Game.Seed)
	assert.False(t, config.Display.Color)
	assert.True(t, config.Display.Hints)
}

func TestEveryKeyReadable(t *testing.T) {
	config := Default()
	for _, key := range Keys() {
		_, err := config.Get(key)
		assert.NoError(t, err, key)
	}
	_, err := config.Get("nope")
	assert.Error(t, err)
}

func TestConfigPathHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "patience", "config.toml"), GetConfigFilePath())
}
