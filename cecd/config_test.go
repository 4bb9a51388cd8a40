package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Bind)
	assert.Equal(t, "cecd", cfg.OSDName)
	assert.Equal(t, 100, cfg.History)
	assert.Equal(t, "cec", cfg.MQTT.Prefix)
	assert.Empty(t, cfg.MQTT.Broker, "MQTT is off by default")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"bind": ":9090",
		"device": "/dev/cec1",
		"history": 0,
		"mqtt": {"broker": "tcp://localhost:1883"}
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Bind)
	assert.Equal(t, "/dev/cec1", cfg.Device)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, "cecd", cfg.MQTT.ClientID, "defaults survive a partial file")
	assert.Equal(t, 1, cfg.History, "history is clamped to at least 1")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.json")
	assert.Error(t, err)
}
