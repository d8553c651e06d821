package telemetry

import "fmt"

// FormatPacket renders the one-line diagnostic summary for a packet,
// dispatching solely on the header kind.
func FormatPacket(p Packet) string {
	switch p.Header.Kind {
	case KindSystemStatus:
		return fmt.Sprintf("SYSTEM: uptime=%ds heap=%d tasks=%d seq=%d",
			p.System.UptimeSeconds, p.System.HeapFree, p.System.TaskCount, p.Header.Sequence)
	case KindPower:
		return fmt.Sprintf("POWER: bat=%.2fV level=%d%% temp=%.1fC seq=%d",
			p.Power.BatteryVoltage, p.Power.BatteryLevel, p.Power.BatteryTemperature, p.Header.Sequence)
	case KindTemperature:
		return fmt.Sprintf("TEMP: obc=%.1fC comms=%.1fC payload=%.1fC seq=%d",
			p.Temperature.OBC, p.Temperature.Comms, p.Temperature.Payload, p.Header.Sequence)
	case KindSubsystemStatus:
		return fmt.Sprintf("SUBSYS: comms=%d uptime=%d success=%d%% seq=%d",
			boolBit(p.Subsystem.CommsOK), p.Subsystem.CommsUptime,
			p.Subsystem.CommandSuccessRate, p.Header.Sequence)
	default:
		return fmt.Sprintf("UNKNOWN: kind=%d seq=%d", p.Header.Kind, p.Header.Sequence)
	}
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
