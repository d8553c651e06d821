package telemetry

import (
	"time"

	"github.com/teidesat/obc-telemetry/internal/sensors"
)

// Fixed payload constants carried over from the flight configuration.
const (
	systemModeNominal   = 1
	batteryLevelBase    = 85
	batteryDecayDivisor = 3600
	payloadUptimeOffset = 100
	lastCommandID       = 0x25
	commandSuccessRate  = 98
	solarVoltageNominal = 5.0
	solarCurrentNominal = 0.5
	batteryCurrentIdle  = 0.1
)

// Generator builds telemetry packets. Construction never fails; value
// sources are total functions. All methods are safe for concurrent use,
// though in practice only the Collector calls them.
type Generator struct {
	seq    *SeqCounter
	uptime *UptimeCounter
	analog sensors.Analog
	ticks  func() uint32
}

// NewGenerator creates a generator over the given shared counters and
// analog value-source strategy.
func NewGenerator(seq *SeqCounter, uptime *UptimeCounter, analog sensors.Analog) *Generator {
	boot := time.Now()
	return &Generator{
		seq:    seq,
		uptime: uptime,
		analog: analog,
		ticks:  func() uint32 { return uint32(time.Since(boot).Milliseconds()) },
	}
}

func (g *Generator) header(kind Kind, priority uint8) Header {
	return Header{
		Kind:      kind,
		Timestamp: g.ticks(),
		Sequence:  g.seq.Next(),
		Priority:  priority,
	}
}

// SystemStatus builds a system status packet from platform introspection.
func (g *Generator) SystemStatus() Packet {
	return Packet{
		Header: g.header(KindSystemStatus, 1),
		System: SystemStatus{
			UptimeSeconds:  g.uptime.Seconds(),
			SystemMode:     systemModeNominal,
			CPUUsage:       0,
			StackHighWater: sensors.StackHighWater(),
			HeapFree:       sensors.FreeHeapBytes(),
			TaskCount:      sensors.TaskCount(),
			ErrorCount:     0,
		},
	}
}

// PowerStatus builds a power packet. Battery level decays with uptime.
func (g *Generator) PowerStatus() Packet {
	up := g.uptime.Seconds()
	return Packet{
		Header: g.header(KindPower, 2),
		Power: Power{
			BatteryVoltage:     g.analog.Voltage(),
			BatteryCurrent:     batteryCurrentIdle,
			BatteryTemperature: g.analog.Temperature(),
			SolarVoltage:       solarVoltageNominal,
			SolarCurrent:       solarCurrentNominal,
			BatteryLevel:       uint8(batteryLevelBase - up/batteryDecayDivisor),
			PowerState:         0,
		},
	}
}

// TemperatureStatus builds a temperature packet with five independent
// readings from the analog source.
func (g *Generator) TemperatureStatus() Packet {
	t := g.analog.Temperatures()
	return Packet{
		Header: g.header(KindTemperature, 1),
		Temperature: Temperature{
			OBC:      t.OBC,
			Comms:    t.Comms,
			Payload:  t.Payload,
			Battery:  t.Battery,
			External: t.External,
		},
	}
}

// SubsystemStatus builds a subsystem health packet. PayloadUptime is
// uptime minus a fixed offset with no floor; it underflows during the
// first offset seconds after boot (known limitation of the flight data
// layout, kept as-is).
func (g *Generator) SubsystemStatus() Packet {
	up := g.uptime.Seconds()
	return Packet{
		Header: g.header(KindSubsystemStatus, 1),
		Subsystem: SubsystemStatus{
			CommsOK:            true,
			ADCSOK:             true,
			PayloadOK:          true,
			PowerOK:            true,
			CommsUptime:        up,
			PayloadUptime:      up - payloadUptimeOffset,
			LastCommandID:      lastCommandID,
			CommandSuccessRate: commandSuccessRate,
		},
	}
}
