package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	path := writeConfig(t, `
[logger]
log-level = "debug"

[node]
bind = "127.0.0.1"
cidr = "10.0.0.0/8"
subnet = 1
universe = 2
slots = 24
short-name = "stage-left"
long-name = "stage left dmx node"
broadcast = true
subnet-mask = "255.255.0.0"

[mqtt]
enabled = true
clientID = "node-1"
server = "broker.local"
port = "1883"
topic = "lighting/frames"
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "127.0.0.1", cfg.Node.Bind)
	assert.Equal(t, "10.0.0.0/8", cfg.Node.CIDR)
	assert.Equal(t, uint8(1), cfg.Node.Subnet)
	assert.Equal(t, uint8(2), cfg.Node.Universe)
	assert.Equal(t, 24, cfg.Node.Slots)
	assert.Equal(t, "stage-left", cfg.Node.ShortName)
	assert.True(t, cfg.Node.Broadcast)
	assert.Equal(t, "255.255.0.0", cfg.Node.SubnetMask)
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, "node-1", cfg.MQTT.ClientID)
	assert.Equal(t, "lighting/frames", cfg.MQTT.Topic)
}

func TestNewConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
[logger]
log-level = "info"
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Node.Bind)
	assert.Equal(t, "192.168.6.0/24", cfg.Node.CIDR)
	assert.Equal(t, 512, cfg.Node.Slots)
	assert.Equal(t, "255.255.255.0", cfg.Node.SubnetMask)
	assert.False(t, cfg.Node.Broadcast)
	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, "artnet/frames", cfg.MQTT.Topic)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
