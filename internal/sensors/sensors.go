// Package sensors provides the opaque value sources the telemetry
// generators read: analog sensor strategies (simulated vs nominal) and
// platform introspection.
package sensors

import (
	"math/rand"
	"runtime"
	"sync"
	"time"
)

// Nominal sensor constants used when simulation is off.
const (
	nominalVoltage     = 3.3
	nominalTemperature = 25.0
)

// Temperatures is one reading of the five independent temperature
// channels, in °C.
type Temperatures struct {
	OBC      float32
	Comms    float32
	Payload  float32
	Battery  float32
	External float32
}

// Analog is a sensor value source. Implementations are total: every call
// returns a value and never blocks.
type Analog interface {
	// Voltage returns the battery bus voltage in volts.
	Voltage() float32
	// Temperature returns the battery temperature in °C.
	Temperature() float32
	// Temperatures reads all five temperature channels.
	Temperatures() Temperatures
}

// Simulated jitters nominal values with a bounded pseudo-random offset:
// voltage 3.3V + [0, 0.2)V, temperature 25°C + [0, 15)°C.
type Simulated struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated analog source. The seed makes test
// runs reproducible; pass 0 for an arbitrary stream.
func NewSimulated(seed int64) *Simulated {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulated{rng: rand.New(rand.NewSource(seed))}
}

func (s *Simulated) Voltage() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nominalVoltage + float32(s.rng.Intn(200))/1000.0
}

func (s *Simulated) Temperature() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.temperature()
}

// Temperatures derives the five channels from independent jittered reads
// with fixed per-channel offsets.
func (s *Simulated) Temperatures() Temperatures {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Temperatures{
		OBC:      s.temperature(),
		Comms:    s.temperature() - 5,
		Payload:  s.temperature() + 3,
		Battery:  s.temperature(),
		External: s.temperature() - 10,
	}
}

// temperature must be called with s.mu held.
func (s *Simulated) temperature() float32 {
	return nominalTemperature + float32(s.rng.Intn(150))/10.0
}

// Nominal returns fixed nominal constants on every read.
type Nominal struct{}

func (Nominal) Voltage() float32     { return nominalVoltage }
func (Nominal) Temperature() float32 { return nominalTemperature }

func (Nominal) Temperatures() Temperatures {
	return Temperatures{OBC: 35, Comms: 28, Payload: 25, Battery: 22, External: -15}
}

// FreeHeapBytes reports currently unallocated heap memory.
func FreeHeapBytes() uint32 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return uint32(m.HeapSys - m.HeapAlloc)
}

// StackHighWater reports current stack memory in use, the closest
// equivalent to a per-task stack watermark.
func StackHighWater() uint32 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return uint32(m.StackInuse)
}

// TaskCount reports the number of live goroutines.
func TaskCount() uint16 {
	return uint16(runtime.NumGoroutine())
}
