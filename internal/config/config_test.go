package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  node:
    name: obc-test
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "obc-test", cfg.Node.Name)
	assert.Equal(t, 32, cfg.Queue.Capacity)
	assert.Equal(t, "simulated", cfg.Sensors.Mode)
	assert.Equal(t, 5*time.Second, cfg.Collector.Interval)
	assert.Equal(t, time.Second, cfg.Processor.IdleInterval)
	assert.Equal(t, 2*time.Second, cfg.Transmitter.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Transmitter.WindowPeriod)
	assert.Equal(t, 50*time.Millisecond, cfg.Transmitter.PacketDelay)
	assert.Equal(t, "console", cfg.Transmitter.Downlink.Type)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9091", cfg.Metrics.Listen)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  node:
    name: flight-obc
  queue:
    capacity: 8
  sensors:
    mode: nominal
  collector:
    interval: 250ms
  transmitter:
    poll_interval: 100ms
    window_period: 2s
    packet_delay: 5ms
  log:
    level: debug
    format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Queue.Capacity)
	assert.Equal(t, "nominal", cfg.Sensors.Mode)
	assert.Equal(t, 250*time.Millisecond, cfg.Collector.Interval)
	assert.Equal(t, 100*time.Millisecond, cfg.Transmitter.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.Transmitter.WindowPeriod)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadHostnameFallback(t *testing.T) {
	path := writeConfig(t, `
telemetry: {}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Node.Name)
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  log:
    level: verbose
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoadRejectsInvalidSensorsMode(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  sensors:
    mode: hardware
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sensors.mode")
}

func TestLoadRejectsNonPositiveCapacity(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  queue:
    capacity: 0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue.capacity")
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  collector:
    interval: 0s
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collector.interval")
}

func TestLoadMQTTDownlinkRequiresBroker(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  transmitter:
    downlink:
      type: mqtt
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mqtt.broker")
}

func TestLoadMQTTDownlinkClientIDDefault(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  node:
    name: obc-1
  transmitter:
    downlink:
      type: mqtt
      mqtt:
        broker: ground.example.org
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "obc-telemetry-obc-1", cfg.Transmitter.Downlink.MQTT.ClientID)
	assert.Equal(t, 1883, cfg.Transmitter.Downlink.MQTT.Port)
	assert.Equal(t, "obc/telemetry", cfg.Transmitter.Downlink.MQTT.TopicPrefix)
	assert.Equal(t, 5*time.Second, cfg.Transmitter.Downlink.MQTT.Timeout)
}

func TestLoadRejectsUnknownDownlinkType(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  transmitter:
    downlink:
      type: laser
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "downlink type")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
