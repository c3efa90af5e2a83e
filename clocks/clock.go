package clocks

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// System is the wall clock corrected by an offset from an external time sync.
type System struct {
	mu     sync.Mutex
	offset time.Duration
}

var _ Clock = new(System)

func (s *System) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().Add(s.offset)
}

// Adjust records the difference reported by a time sync.
func (s *System) Adjust(offset time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = offset
}

// Manual only moves when told to.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

var _ Clock = new(Manual)

func NewManual(now time.Time) *Manual {
	return &Manual{
		now: now,
	}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func (m *Manual) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}
