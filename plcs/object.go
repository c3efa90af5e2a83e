package plcs

import (
	"context"
	"strings"

	"github.com/reusee/ladder/cells"
)

type Handle int

// Object is one named logic element. Exactly one of the per-kind
// states is set, matching Kind.
type Object struct {
	ID     string
	Handle Handle
	Kind   Kind

	// latched incoming line state of the current scan
	state bool
	// reached through a coil in the current scan
	coil bool

	children   map[string]*cells.Cell
	childNames []string

	input       *Input
	output      *Output
	timer       *Timer
	counter     *Counter
	oneShot     *OneShot
	clock       *Clock
	math        *Math
	variable    *Variable
	remote      *Remote
	remoteChild *RemoteChild
}

// State reports the latched line state. It is cleared by update.
func (o *Object) State() bool {
	return o.state
}

// ChildVar returns the cell named by bit, creating and caching an alias of
// the object's own storage on first use.
func (o *Object) ChildVar(bit string) (*cells.Cell, bool) {
	bit = strings.ToUpper(bit)
	if c, ok := o.children[bit]; ok {
		return c, true
	}
	target := o.bitCell(bit)
	if target == nil {
		return nil, false
	}
	c := cells.Alias(target)
	if o.children == nil {
		o.children = make(map[string]*cells.Cell)
	}
	o.children[bit] = c
	o.childNames = append(o.childNames, bit)
	return c, true
}

// Bits lists the bit names ChildVar accepts at the moment.
func (o *Object) Bits() []string {
	var candidates []string
	switch o.Kind {
	case KindTimer:
		candidates = []string{"EN", "TT", "DN", "ACC", "PRE"}
	case KindCounter:
		candidates = []string{"EN", "DN", "ACC", "PRE"}
	case KindMath:
		candidates = []string{"VAL", "A", "B"}
	default:
		candidates = []string{"VAL"}
	}
	ret := candidates[:0:0]
	for _, bit := range candidates {
		if o.bitCell(bit) != nil {
			ret = append(ret, bit)
		}
	}
	return ret
}

func (o *Object) bitCell(bit string) *cells.Cell {
	switch o.Kind {

	case KindInput:
		if bit == "VAL" {
			return o.input.val
		}

	case KindOutput, KindVirtual:
		if bit == "VAL" {
			return o.output.val
		}

	case KindTimer:
		t := o.timer
		switch bit {
		case "EN":
			return t.en
		case "TT":
			return t.tt
		case "DN":
			return t.dn
		case "ACC":
			return t.acc
		case "PRE":
			return t.pre
		}

	case KindCounter:
		c := o.counter
		switch bit {
		case "EN":
			return c.en
		case "DN":
			return c.dn
		case "ACC":
			return c.acc
		case "PRE":
			return c.pre
		}

	case KindOneShot:
		if bit == "VAL" {
			return o.oneShot.val
		}

	case KindClock:
		if bit == "VAL" {
			return o.clock.val
		}

	case KindMath:
		m := o.math
		switch bit {
		case "VAL":
			return m.dest
		case "A":
			return m.a
		case "B":
			return m.b
		}

	case KindVariable:
		if bit == "VAL" {
			return o.variable.cell
		}

	case KindRemote, KindCAN:
		if bit == "VAL" {
			return o.remote.connected
		}

	case KindRemoteChild:
		if bit == "VAL" {
			return o.remoteChild.shadow
		}

	}
	return nil
}

// DefaultCell is the cell a bare reference to the object reads.
// It is nil for a remote proxy that has not been initialized.
func (o *Object) DefaultCell() *cells.Cell {
	switch o.Kind {
	case KindTimer, KindCounter:
		return o.bitCell("ACC")
	}
	return o.bitCell("VAL")
}

func (o *Object) setLineState(p *Program, incoming, invert, coil bool) bool {
	if o.Kind == KindRemoteChild || o.Kind == KindRemote || o.Kind == KindCAN {
		if p.remoteOf(o).disabled {
			return false
		}
	}

	o.state = o.state || incoming
	if coil {
		o.coil = true
	}

	var pass bool
	switch o.Kind {
	case KindInput:
		pass = o.input.read(p.env.Board)
	case KindOutput, KindVirtual:
		pass = o.output.val.Bool()
	case KindTimer:
		pass = o.timer.dn.Bool()
	case KindCounter:
		pass = o.counter.dn.Bool()
	case KindOneShot:
		if o.oneShot.coilDriven && !coil {
			pass = o.oneShot.val.Bool()
		} else {
			pass = o.oneShot.latch(o.state)
		}
	case KindClock:
		pass = o.clock.sample(p.env.Clock.Now())
	case KindMath:
		if o.math.Op.compares() {
			if !o.state {
				return false
			}
			pass = o.math.compare()
		} else {
			// math blocks pass power through
			return o.state
		}
	case KindVariable:
		pass = o.variable.cell.Bool()
	case KindRemote, KindCAN:
		pass = o.remote.connected.Bool()
	case KindRemoteChild:
		if shadow := o.remoteChild.shadow; shadow != nil {
			pass = shadow.Bool()
		}
	}

	return o.state && pass != invert
}

func (o *Object) drivenByCoil() bool {
	if o.Kind == KindOneShot {
		return o.oneShot.coilDriven
	}
	return o.Kind.drivenByCoil()
}

func (o *Object) update(ctx context.Context, p *Program) {
	defer func() {
		o.state = false
		o.coil = false
	}()

	if o.drivenByCoil() && !o.coil {
		return
	}

	switch o.Kind {
	case KindOutput, KindVirtual:
		o.output.drive(p.env.Board, o.state)
	case KindTimer:
		o.timer.step(p.env.Clock.Now(), o.state)
	case KindCounter:
		o.counter.step(o.state)
	case KindOneShot:
		o.oneShot.settle(o.state)
	case KindMath:
		if o.state && !o.math.Op.compares() {
			o.math.run()
		}
	case KindRemote, KindCAN:
		p.refreshRemote(ctx, o)
	case KindRemoteChild:
		p.refreshRemote(ctx, p.objects[o.remoteChild.Parent])
	}
}

// Reset clears the accumulated state of timers and counters.
func (o *Object) Reset() error {
	switch o.Kind {
	case KindTimer:
		o.timer.reset(false)
	case KindCounter:
		o.counter.reset()
	default:
		return ErrNotResettable
	}
	return nil
}

// Math is the block state of a math object, nil for other kinds.
func (o *Object) Math() *Math {
	return o.math
}
