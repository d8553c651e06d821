package downlink

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teidesat/obc-telemetry/internal/telemetry"
)

func TestConsoleLinkNumbersTransmissions(t *testing.T) {
	var buf bytes.Buffer
	link := NewConsoleLink(&buf)

	p := telemetry.Packet{
		Header: telemetry.Header{Kind: telemetry.KindPower, Sequence: 12, Timestamp: 3400},
	}
	require.NoError(t, link.Send(context.Background(), p))
	require.NoError(t, link.Send(context.Background(), p))

	out := buf.String()
	assert.Contains(t, out, "[1] kind=power seq=12 time=3400")
	assert.Contains(t, out, "[2] kind=power seq=12 time=3400")
}

func TestFramePopulatesOnlyActiveVariant(t *testing.T) {
	p := telemetry.Packet{
		Header: telemetry.Header{Kind: telemetry.KindTemperature, Sequence: 5, Priority: 1},
		Temperature: telemetry.Temperature{
			OBC: 35, Comms: 28, Payload: 25, Battery: 22, External: -15,
		},
	}

	data, err := json.Marshal(newFrame("obc-1", p))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "temperature", decoded["kind"])
	assert.Equal(t, "obc-1", decoded["node"])
	assert.Contains(t, decoded, "temperature")
	assert.NotContains(t, decoded, "system")
	assert.NotContains(t, decoded, "power")
	assert.NotContains(t, decoded, "subsystem")
}

func TestFrameCarriesHeaderFields(t *testing.T) {
	p := telemetry.Packet{
		Header: telemetry.Header{Kind: telemetry.KindSystemStatus, Timestamp: 777, Sequence: 42, Priority: 1},
		System: telemetry.SystemStatus{UptimeSeconds: 10, TaskCount: 3},
	}

	f := newFrame("", p)
	assert.Equal(t, "system", f.Kind)
	assert.Equal(t, uint32(777), f.Timestamp)
	assert.Equal(t, uint16(42), f.Sequence)
	require.NotNil(t, f.System)
	assert.Equal(t, uint32(10), f.System.UptimeSeconds)
	assert.Equal(t, uint16(3), f.System.TaskCount)
}
