package downlink

import "github.com/teidesat/obc-telemetry/internal/telemetry"

// frame is the JSON wire representation of one packet. Only the payload
// variant selected by the header kind is populated; the rest stay nil so
// they are omitted from the encoded frame.
type frame struct {
	Node        string            `json:"node,omitempty"`
	Kind        string            `json:"kind"`
	Timestamp   uint32            `json:"timestamp"`
	Sequence    uint16            `json:"sequence"`
	Priority    uint8             `json:"priority"`
	System      *systemFrame      `json:"system,omitempty"`
	Power       *powerFrame       `json:"power,omitempty"`
	Temperature *temperatureFrame `json:"temperature,omitempty"`
	Subsystem   *subsystemFrame   `json:"subsystem,omitempty"`
}

type systemFrame struct {
	UptimeSeconds  uint32 `json:"uptime_s"`
	SystemMode     uint8  `json:"mode"`
	CPUUsage       uint8  `json:"cpu_pct"`
	StackHighWater uint32 `json:"stack_high_water"`
	HeapFree       uint32 `json:"heap_free"`
	TaskCount      uint16 `json:"task_count"`
	ErrorCount     uint16 `json:"error_count"`
}

type powerFrame struct {
	BatteryVoltage     float32 `json:"battery_v"`
	BatteryCurrent     float32 `json:"battery_a"`
	BatteryTemperature float32 `json:"battery_c"`
	SolarVoltage       float32 `json:"solar_v"`
	SolarCurrent       float32 `json:"solar_a"`
	BatteryLevel       uint8   `json:"battery_pct"`
	PowerState         uint8   `json:"power_state"`
}

type temperatureFrame struct {
	OBC      float32 `json:"obc_c"`
	Comms    float32 `json:"comms_c"`
	Payload  float32 `json:"payload_c"`
	Battery  float32 `json:"battery_c"`
	External float32 `json:"external_c"`
}

type subsystemFrame struct {
	CommsOK            bool   `json:"comms_ok"`
	ADCSOK             bool   `json:"adcs_ok"`
	PayloadOK          bool   `json:"payload_ok"`
	PowerOK            bool   `json:"power_ok"`
	CommsUptime        uint32 `json:"comms_uptime_s"`
	PayloadUptime      uint32 `json:"payload_uptime_s"`
	LastCommandID      uint8  `json:"last_command_id"`
	CommandSuccessRate uint8  `json:"command_success_pct"`
}

// newFrame builds the wire frame for a packet, populating only the
// variant selected by the header kind.
func newFrame(node string, p telemetry.Packet) frame {
	f := frame{
		Node:      node,
		Kind:      p.Header.Kind.String(),
		Timestamp: p.Header.Timestamp,
		Sequence:  p.Header.Sequence,
		Priority:  p.Header.Priority,
	}
	switch p.Header.Kind {
	case telemetry.KindSystemStatus:
		f.System = &systemFrame{
			UptimeSeconds:  p.System.UptimeSeconds,
			SystemMode:     p.System.SystemMode,
			CPUUsage:       p.System.CPUUsage,
			StackHighWater: p.System.StackHighWater,
			HeapFree:       p.System.HeapFree,
			TaskCount:      p.System.TaskCount,
			ErrorCount:     p.System.ErrorCount,
		}
	case telemetry.KindPower:
		f.Power = &powerFrame{
			BatteryVoltage:     p.Power.BatteryVoltage,
			BatteryCurrent:     p.Power.BatteryCurrent,
			BatteryTemperature: p.Power.BatteryTemperature,
			SolarVoltage:       p.Power.SolarVoltage,
			SolarCurrent:       p.Power.SolarCurrent,
			BatteryLevel:       p.Power.BatteryLevel,
			PowerState:         p.Power.PowerState,
		}
	case telemetry.KindTemperature:
		f.Temperature = &temperatureFrame{
			OBC:      p.Temperature.OBC,
			Comms:    p.Temperature.Comms,
			Payload:  p.Temperature.Payload,
			Battery:  p.Temperature.Battery,
			External: p.Temperature.External,
		}
	case telemetry.KindSubsystemStatus:
		f.Subsystem = &subsystemFrame{
			CommsOK:            p.Subsystem.CommsOK,
			ADCSOK:             p.Subsystem.ADCSOK,
			PayloadOK:          p.Subsystem.PayloadOK,
			PowerOK:            p.Subsystem.PowerOK,
			CommsUptime:        p.Subsystem.CommsUptime,
			PayloadUptime:      p.Subsystem.PayloadUptime,
			LastCommandID:      p.Subsystem.LastCommandID,
			CommandSuccessRate: p.Subsystem.CommandSuccessRate,
		}
	}
	return f
}
