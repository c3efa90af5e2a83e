package plcs

import (
	"github.com/reusee/ladder/cells"
	"github.com/reusee/ladder/pins"
)

type Input struct {
	Pin     int
	NC      bool
	Analog  bool
	Virtual bool

	val *cells.Cell
}

func newInput(pin int, nc, analog, virtual bool) *Input {
	kind := cells.KindBool
	if analog {
		kind = cells.KindUint16
	}
	return &Input{
		Pin:     pin,
		NC:      nc,
		Analog:  analog,
		Virtual: virtual,
		val:     cells.New(kind),
	}
}

// read samples the pin and reports whether the contact passes.
// Virtual inputs keep whatever value was written to them.
func (in *Input) read(board pins.Board) bool {
	if !in.Virtual {
		if in.Analog {
			in.val.SetUint(uint64(board.AnalogRead(in.Pin)))
		} else {
			in.val.SetBool(board.DigitalRead(in.Pin))
		}
	}
	if in.Analog {
		return true
	}
	return in.val.Bool() != in.NC
}

// Output drives a pin, or only its own bit when Virtual.
type Output struct {
	Pin     int
	NC      bool
	Virtual bool

	val *cells.Cell
}

func newOutput(pin int, nc, virtual bool) *Output {
	return &Output{
		Pin:     pin,
		NC:      nc,
		Virtual: virtual,
		val:     cells.New(cells.KindBool),
	}
}

func (out *Output) drive(board pins.Board, energized bool) {
	out.val.SetBool(energized)
	if out.Virtual {
		return
	}
	board.DigitalWrite(out.Pin, energized != out.NC)
}

type OneShot struct {
	pulsed bool
	pulse  bool
	// set when some rung drives the one-shot as a coil; contacts then read VAL
	coilDriven bool

	val *cells.Cell
}

func newOneShot() *OneShot {
	return &OneShot{
		val: cells.New(cells.KindBool),
	}
}

// latch raises the pulse on the first energized scan after a de-energized one.
func (s *OneShot) latch(energized bool) bool {
	if energized && !s.pulsed {
		s.pulsed = true
		s.pulse = true
	}
	return s.pulse
}

func (s *OneShot) settle(energized bool) {
	if !energized {
		s.pulsed = false
	}
	s.val.SetBool(s.pulse)
	s.pulse = false
}

type Variable struct {
	cell *cells.Cell
}
