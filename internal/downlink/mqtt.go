package downlink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/teidesat/obc-telemetry/internal/config"
	"github.com/teidesat/obc-telemetry/internal/telemetry"
)

// MQTTLink publishes packets as JSON frames to a ground-segment MQTT
// broker, one topic per packet kind.
type MQTTLink struct {
	client mqtt.Client
	cfg    config.MQTTDownlinkConfig
	node   string

	mu        sync.RWMutex
	connected bool
}

// NewMQTTLink creates an MQTT downlink. Connect must be called before
// the first Send.
func NewMQTTLink(node string, cfg config.MQTTDownlinkConfig) *MQTTLink {
	l := &MQTTLink{cfg: cfg, node: node}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Broker, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)

	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	// Callbacks keep internal state accurate
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		l.setConnected(true)
		slog.Info("downlink broker connected", "broker", cfg.Broker, "port", cfg.Port)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		l.setConnected(false)
		slog.Warn("downlink broker connection lost", "error", err)
	})

	l.client = mqtt.NewClient(opts)
	return l
}

// Connect establishes the broker connection, respecting ctx.
func (l *MQTTLink) Connect(ctx context.Context) error {
	if l.IsConnected() {
		return nil
	}

	token := l.client.Connect()

	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			return nil
		}
		select {
		case <-ctx.Done():
			// Stop the background dialer; the client would otherwise
			// keep retrying after the caller gave up.
			l.client.Disconnect(0)
			return ctx.Err()
		default:
		}
	}
}

// Send publishes one packet to <topic_prefix>/<kind>.
func (l *MQTTLink) Send(_ context.Context, p telemetry.Packet) error {
	if !l.IsConnected() {
		return fmt.Errorf("mqtt downlink not connected")
	}

	topic := fmt.Sprintf("%s/%s", l.cfg.TopicPrefix, p.Header.Kind)

	data, err := json.Marshal(newFrame(l.node, p))
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	token := l.client.Publish(topic, l.cfg.QoS, false, data)
	if !token.WaitTimeout(l.cfg.Timeout) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("publish frame: %w", token.Error())
	}

	slog.Debug("published frame", "topic", topic, "seq", p.Header.Sequence)
	return nil
}

// IsConnected returns whether the client is connected.
func (l *MQTTLink) IsConnected() bool {
	l.mu.RLock()
	connected := l.connected
	l.mu.RUnlock()
	return connected && l.client.IsConnected()
}

// Close disconnects from the broker. Safe to call multiple times.
func (l *MQTTLink) Close() {
	if l.client != nil {
		l.client.Disconnect(250)
	}
	l.setConnected(false)
	slog.Info("downlink disconnected")
}

func (l *MQTTLink) setConnected(v bool) {
	l.mu.Lock()
	l.connected = v
	l.mu.Unlock()
}
