package pins

import (
	"fmt"
	"sync"
)

// Board is the I/O surface driven by the scan loop.
type Board interface {
	DigitalRead(pin int) bool
	DigitalWrite(pin int, high bool)
	AnalogRead(pin int) uint16
}

// Memory is a Board backed by maps, used for simulation and tests.
type Memory struct {
	mu      sync.Mutex
	digital map[int]bool
	analog  map[int]uint16
	writes  int
}

var _ Board = new(Memory)

func NewMemory() *Memory {
	return &Memory{
		digital: make(map[int]bool),
		analog:  make(map[int]uint16),
	}
}

func (m *Memory) DigitalRead(pin int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.digital[pin]
}

func (m *Memory) DigitalWrite(pin int, high bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digital[pin] = high
	m.writes++
}

func (m *Memory) AnalogRead(pin int) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analog[pin]
}

// Set drives an input pin from outside the scan loop.
func (m *Memory) Set(pin int, high bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digital[pin] = high
}

func (m *Memory) SetAnalog(pin int, value uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analog[pin] = value
}

func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("digital=%v analog=%v", m.digital, m.analog)
}
