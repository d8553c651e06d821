// Package telemetry defines the telemetry packet taxonomy and the
// generator library that produces packets from platform and sensor
// value sources.
package telemetry

// Kind discriminates which payload variant a packet carries.
type Kind uint8

const (
	// KindSystemStatus carries OBC runtime health (uptime, memory, tasks).
	KindSystemStatus Kind = iota
	// KindPower carries battery and solar panel readings.
	KindPower
	// KindTemperature carries per-subsystem temperature readings.
	KindTemperature
	// KindSubsystemStatus carries subsystem health flags and command stats.
	KindSubsystemStatus

	kindCount = 4
)

// Kinds lists all packet kinds in collection order.
var Kinds = [kindCount]Kind{KindSystemStatus, KindPower, KindTemperature, KindSubsystemStatus}

func (k Kind) String() string {
	switch k {
	case KindSystemStatus:
		return "system"
	case KindPower:
		return "power"
	case KindTemperature:
		return "temperature"
	case KindSubsystemStatus:
		return "subsystem"
	default:
		return "unknown"
	}
}

// Header is embedded in every packet.
type Header struct {
	Kind      Kind
	Timestamp uint32 // monotonic ms ticks since process start
	Sequence  uint16 // global production order, shared across kinds, wraps
	Priority  uint8  // advisory; not enforced by queue ordering
}

// SystemStatus is the payload for KindSystemStatus.
type SystemStatus struct {
	UptimeSeconds  uint32
	SystemMode     uint8
	CPUUsage       uint8 // no cheap per-task CPU metric on this platform
	StackHighWater uint32
	HeapFree       uint32
	TaskCount      uint16
	ErrorCount     uint16
}

// Power is the payload for KindPower.
type Power struct {
	BatteryVoltage     float32
	BatteryCurrent     float32
	BatteryTemperature float32
	SolarVoltage       float32
	SolarCurrent       float32
	BatteryLevel       uint8 // percent
	PowerState         uint8
}

// Temperature is the payload for KindTemperature. Readings in °C.
type Temperature struct {
	OBC      float32
	Comms    float32
	Payload  float32
	Battery  float32
	External float32
}

// SubsystemStatus is the payload for KindSubsystemStatus.
type SubsystemStatus struct {
	CommsOK            bool
	ADCSOK             bool
	PayloadOK          bool
	PowerOK            bool
	CommsUptime        uint32
	PayloadUptime      uint32 // uptime minus fixed offset; underflows before offset elapses
	LastCommandID      uint8
	CommandSuccessRate uint8 // percent
}

// Packet is one telemetry sample. Exactly one payload variant is
// populated, selected by Header.Kind; the others stay zero. Packets are
// passed by value between tasks and never mutated after construction.
type Packet struct {
	Header      Header
	System      SystemStatus
	Power       Power
	Temperature Temperature
	Subsystem   SubsystemStatus
}
