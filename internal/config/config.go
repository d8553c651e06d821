// Package config handles configuration loading using viper.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level agent configuration. Maps to the `telemetry:`
// root key in YAML; env vars use the TELEMETRY_ prefix (e.g.
// TELEMETRY_LOG_LEVEL maps to telemetry.log.level).
type Config struct {
	Node        NodeConfig        `mapstructure:"node"`
	Queue       QueueConfig       `mapstructure:"queue"`
	Sensors     SensorsConfig     `mapstructure:"sensors"`
	Collector   CollectorConfig   `mapstructure:"collector"`
	Processor   ProcessorConfig   `mapstructure:"processor"`
	Transmitter TransmitterConfig `mapstructure:"transmitter"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Log         LogConfig         `mapstructure:"log"`
}

// NodeConfig contains node identification settings.
type NodeConfig struct {
	Name string `mapstructure:"name"` // Empty = os.Hostname()
}

// QueueConfig configures the shared packet buffer.
type QueueConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// SensorsConfig selects the analog value-source strategy.
type SensorsConfig struct {
	Mode string `mapstructure:"mode"` // simulated | nominal
	Seed int64  `mapstructure:"seed"` // simulated only; 0 = arbitrary
}

// CollectorConfig configures the periodic telemetry collector.
type CollectorConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// ProcessorConfig configures the local diagnostic consumer.
type ProcessorConfig struct {
	IdleInterval time.Duration `mapstructure:"idle_interval"`
}

// TransmitterConfig configures the ground-contact transmitter.
type TransmitterConfig struct {
	PollInterval time.Duration  `mapstructure:"poll_interval"`
	WindowPeriod time.Duration  `mapstructure:"window_period"`
	PacketDelay  time.Duration  `mapstructure:"packet_delay"`
	Downlink     DownlinkConfig `mapstructure:"downlink"`
}

// DownlinkConfig selects and configures the downlink transport.
type DownlinkConfig struct {
	Type string             `mapstructure:"type"` // console | mqtt
	MQTT MQTTDownlinkConfig `mapstructure:"mqtt"`
}

// MQTTDownlinkConfig contains MQTT broker settings for the mqtt downlink.
type MQTTDownlinkConfig struct {
	Broker      string        `mapstructure:"broker"`
	Port        int           `mapstructure:"port"`
	ClientID    string        `mapstructure:"client_id"`
	TopicPrefix string        `mapstructure:"topic_prefix"`
	QoS         byte          `mapstructure:"qos"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
	Path    string `mapstructure:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `mapstructure:"level"`  // debug / info / warn / error
	Format string        `mapstructure:"format"` // json / text / console
	File   FileLogConfig `mapstructure:"file"`
}

// FileLogConfig configures rotated file log output.
type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// configRoot is the top-level wrapper matching the YAML structure
// `telemetry: ...`.
type configRoot struct {
	Telemetry Config `mapstructure:"telemetry"`
}

// Load loads configuration from file, applies env overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// The `telemetry.` key prefix maps to TELEMETRY_ env vars via the
	// key replacer (e.g. "telemetry.log.level" → TELEMETRY_LOG_LEVEL).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Telemetry

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values. All keys carry the "telemetry."
// prefix to match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("telemetry.queue.capacity", 32)

	v.SetDefault("telemetry.sensors.mode", "simulated")
	v.SetDefault("telemetry.sensors.seed", 0)

	v.SetDefault("telemetry.collector.interval", "5s")
	v.SetDefault("telemetry.processor.idle_interval", "1s")

	v.SetDefault("telemetry.transmitter.poll_interval", "2s")
	v.SetDefault("telemetry.transmitter.window_period", "30s")
	v.SetDefault("telemetry.transmitter.packet_delay", "50ms")
	v.SetDefault("telemetry.transmitter.downlink.type", "console")
	v.SetDefault("telemetry.transmitter.downlink.mqtt.port", 1883)
	v.SetDefault("telemetry.transmitter.downlink.mqtt.topic_prefix", "obc/telemetry")
	v.SetDefault("telemetry.transmitter.downlink.mqtt.qos", 1)
	v.SetDefault("telemetry.transmitter.downlink.mqtt.timeout", "5s")

	v.SetDefault("telemetry.metrics.enabled", true)
	v.SetDefault("telemetry.metrics.listen", ":9091")
	v.SetDefault("telemetry.metrics.path", "/metrics")

	v.SetDefault("telemetry.log.level", "info")
	v.SetDefault("telemetry.log.format", "text")
	v.SetDefault("telemetry.log.file.enabled", false)
	v.SetDefault("telemetry.log.file.path", "/var/log/obc-telemetry/agent.log")
	v.SetDefault("telemetry.log.file.max_size_mb", 100)
	v.SetDefault("telemetry.log.file.max_age_days", 30)
	v.SetDefault("telemetry.log.file.max_backups", 5)
	v.SetDefault("telemetry.log.file.compress", true)
}

// ValidateAndApplyDefaults validates configuration and applies runtime
// defaults that depend on the environment.
func (cfg *Config) ValidateAndApplyDefaults() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug/info/warn/error)", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("invalid log format: %s (must be json/text/console)", cfg.Log.Format)
	}

	if cfg.Node.Name == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("failed to get hostname: %w", err)
		}
		cfg.Node.Name = hostname
	}

	if cfg.Queue.Capacity < 1 {
		return fmt.Errorf("queue.capacity must be positive, got %d", cfg.Queue.Capacity)
	}

	switch cfg.Sensors.Mode {
	case "simulated", "nominal":
	default:
		return fmt.Errorf("invalid sensors.mode: %s (must be simulated/nominal)", cfg.Sensors.Mode)
	}

	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"collector.interval", cfg.Collector.Interval},
		{"processor.idle_interval", cfg.Processor.IdleInterval},
		{"transmitter.poll_interval", cfg.Transmitter.PollInterval},
		{"transmitter.window_period", cfg.Transmitter.WindowPeriod},
	} {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	if cfg.Transmitter.PacketDelay < 0 {
		return fmt.Errorf("transmitter.packet_delay must not be negative, got %s", cfg.Transmitter.PacketDelay)
	}

	switch cfg.Transmitter.Downlink.Type {
	case "console":
	case "mqtt":
		if cfg.Transmitter.Downlink.MQTT.Broker == "" {
			return fmt.Errorf("transmitter.downlink.mqtt.broker is required when downlink type is mqtt")
		}
		if cfg.Transmitter.Downlink.MQTT.ClientID == "" {
			cfg.Transmitter.Downlink.MQTT.ClientID = "obc-telemetry-" + cfg.Node.Name
		}
	default:
		return fmt.Errorf("unsupported downlink type: %s (must be console/mqtt)", cfg.Transmitter.Downlink.Type)
	}

	return nil
}
