package plcs

import (
	"time"

	"github.com/reusee/ladder/cells"
)

type TimerMode uint8

const (
	// on-delay
	TON TimerMode = iota
	// off-delay
	TOF
	// retentive on-delay
	RTO
)

func (m TimerMode) String() string {
	switch m {
	case TOF:
		return "TOF"
	case RTO:
		return "RTO"
	}
	return "TON"
}

type Timer struct {
	Mode  TimerMode
	Delay time.Duration

	start time.Time

	en  *cells.Cell
	tt  *cells.Cell
	dn  *cells.Cell
	acc *cells.Cell
	pre *cells.Cell
}

func newTimer(delay time.Duration, mode TimerMode) *Timer {
	t := &Timer{
		Mode:  mode,
		Delay: delay,
		en:    cells.New(cells.KindBool),
		tt:    cells.New(cells.KindBool),
		dn:    cells.New(cells.KindBool),
		acc:   cells.New(cells.KindUint64),
		pre:   cells.New(cells.KindUint64),
	}
	t.pre.SetUint(uint64(delay.Milliseconds()))
	return t
}

func (t *Timer) step(now time.Time, energized bool) {
	t.en.SetBool(energized)
	trigger := energized
	if t.Mode == TOF {
		trigger = !energized
	}
	if !trigger {
		t.reset(t.Mode == RTO)
		return
	}
	if t.dn.Bool() {
		return
	}
	if !t.tt.Bool() {
		t.start = now
		t.tt.SetBool(true)
	}
	elapsed := now.Sub(t.start)
	if elapsed < 0 {
		elapsed = 0
	}
	preset := time.Duration(t.pre.Uint()) * time.Millisecond
	if elapsed >= preset {
		t.dn.SetBool(true)
		t.tt.SetBool(false)
		t.acc.SetUint(0)
		return
	}
	t.acc.SetUint(uint64(elapsed.Milliseconds()))
}

func (t *Timer) reset(keepDone bool) {
	t.start = time.Time{}
	t.tt.SetBool(false)
	t.acc.SetUint(0)
	if !keepDone {
		t.dn.SetBool(false)
	}
}

type Counter struct {
	Down bool

	en  *cells.Cell
	dn  *cells.Cell
	acc *cells.Cell
	pre *cells.Cell
}

func newCounter(preset int64, down bool) *Counter {
	c := &Counter{
		Down: down,
		en:   cells.New(cells.KindBool),
		dn:   cells.New(cells.KindBool),
		acc:  cells.New(cells.KindInt64),
		pre:  cells.New(cells.KindInt64),
	}
	c.pre.SetInt(preset)
	c.reset()
	return c
}

// step counts rising edges of the energized state.
func (c *Counter) step(energized bool) {
	if energized && !c.en.Bool() {
		if c.Down {
			c.acc.SetInt(c.acc.Int() - 1)
		} else {
			c.acc.SetInt(c.acc.Int() + 1)
		}
	}
	c.en.SetBool(energized)
	c.settle()
}

func (c *Counter) settle() {
	if c.Down {
		c.dn.SetBool(c.acc.Int() <= 0)
	} else {
		c.dn.SetBool(c.acc.Int() >= c.pre.Int())
	}
}

func (c *Counter) reset() {
	if c.Down {
		c.acc.SetInt(c.pre.Int())
	} else {
		c.acc.SetInt(0)
	}
	c.en.SetBool(false)
	c.settle()
}
