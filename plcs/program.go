package plcs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reusee/ladder/cells"
	"github.com/reusee/ladder/clocks"
	"github.com/reusee/ladder/logs"
)

// Program owns every object, wrapper and rung of one compiled script.
// Handles index into its arenas and stay valid until Reset.
type Program struct {
	env Env

	objects  []*Object
	names    map[string]Handle
	wrappers []*Wrapper
	rungs    []*Rung
	scans    uint64
}

func NewProgram(env Env) *Program {
	return &Program{
		env:   env,
		names: make(map[string]Handle),
	}
}

func (p *Program) Env() Env {
	return p.env
}

// Reset drops every object, wrapper and rung.
func (p *Program) Reset() {
	for _, o := range p.objects {
		if o.remote != nil {
			o.remote.client.Close()
		}
	}
	p.objects = nil
	p.names = make(map[string]Handle)
	p.wrappers = nil
	p.rungs = nil
}

func (p *Program) Lookup(id string) (*Object, bool) {
	h, ok := p.names[strings.ToUpper(id)]
	if !ok {
		return nil, false
	}
	return p.objects[h], true
}

func (p *Program) Object(h Handle) *Object {
	return p.objects[h]
}

func (p *Program) Objects() []*Object {
	return p.objects
}

// Scans is the number of completed scan cycles.
func (p *Program) Scans() uint64 {
	return p.scans
}

// add registers o under its id. An existing object with the same id is
// returned instead.
func (p *Program) add(o *Object) *Object {
	o.ID = strings.ToUpper(o.ID)
	if h, ok := p.names[o.ID]; ok {
		return p.objects[h]
	}
	o.Handle = Handle(len(p.objects))
	p.objects = append(p.objects, o)
	p.names[o.ID] = o.Handle
	return o
}

func (p *Program) NewInput(id string, pin int, nc, analog, virtual bool) *Object {
	return p.add(&Object{
		ID:    id,
		Kind:  KindInput,
		input: newInput(pin, nc, analog, virtual),
	})
}

func (p *Program) NewOutput(id string, pin int, nc, virtual bool) *Object {
	return p.add(&Object{
		ID:     id,
		Kind:   KindOutput,
		output: newOutput(pin, nc, virtual),
	})
}

func (p *Program) NewVirtual(id string) *Object {
	return p.add(&Object{
		ID:     id,
		Kind:   KindVirtual,
		output: newOutput(0, false, true),
	})
}

func (p *Program) NewTimer(id string, delay time.Duration, mode TimerMode) *Object {
	return p.add(&Object{
		ID:    id,
		Kind:  KindTimer,
		timer: newTimer(delay, mode),
	})
}

func (p *Program) NewCounter(id string, preset int64, down bool) *Object {
	return p.add(&Object{
		ID:      id,
		Kind:    KindCounter,
		counter: newCounter(preset, down),
	})
}

func (p *Program) NewOneShot(id string) *Object {
	return p.add(&Object{
		ID:      id,
		Kind:    KindOneShot,
		oneShot: newOneShot(),
	})
}

func (p *Program) NewClock(id string, preset clocks.Preset) *Object {
	return p.add(&Object{
		ID:    id,
		Kind:  KindClock,
		clock: newClock(preset),
	})
}

// NewMath creates a math block with unbound operands; see BindMath.
func (p *Program) NewMath(id string, op MathOp) *Object {
	return p.add(&Object{
		ID:   id,
		Kind: KindMath,
		math: &Math{
			Op: op,
		},
	})
}

func (p *Program) BindMath(o *Object, a, b, dest *cells.Cell) error {
	if o.Kind != KindMath {
		return fmt.Errorf("%s: %w", o.ID, ErrUnboundOperands)
	}
	o.math.Bind(a, b, dest)
	if !o.math.bound() {
		return fmt.Errorf("%s: %w", o.ID, ErrUnboundOperands)
	}
	return nil
}

// NewVariable creates a variable owning cell, or aliasing it when cell is
// already owned elsewhere.
func (p *Program) NewVariable(id string, cell *cells.Cell) *Object {
	return p.add(&Object{
		ID:   id,
		Kind: KindVariable,
		variable: &Variable{
			cell: cell,
		},
	})
}

func (p *Program) NewRemote(id string, addr string, refresh time.Duration) *Object {
	return p.add(&Object{
		ID:     id,
		Kind:   KindRemote,
		remote: newRemote(p.env, "tcp", addr, refresh),
	})
}

func (p *Program) NewCAN(id string, bus string, refresh time.Duration) *Object {
	return p.add(&Object{
		ID:     id,
		Kind:   KindCAN,
		remote: newRemote(p.env, "can", bus, refresh),
	})
}

// RemoteChild returns the proxy for remoteID behind accessor, creating it on
// first use. The proxy is registered as ACCESSOR[REMOTEID].
func (p *Program) RemoteChild(accessor *Object, remoteID string) (*Object, error) {
	if accessor.Kind != KindRemote && accessor.Kind != KindCAN {
		return nil, fmt.Errorf("%s: %w", accessor.ID, ErrNotRemote)
	}
	remoteID = strings.ToUpper(remoteID)
	id := accessor.ID + "[" + remoteID + "]"
	if o, ok := p.Lookup(id); ok {
		return o, nil
	}
	o := p.add(&Object{
		ID:   id,
		Kind: KindRemoteChild,
		remoteChild: &RemoteChild{
			Parent:   accessor.Handle,
			RemoteID: remoteID,
		},
	})
	accessor.remote.proxies = append(accessor.remote.proxies, o.Handle)
	return o, nil
}

// BitObject returns a variable object named PARENT.BIT aliasing the
// parent's child cell.
func (p *Program) BitObject(parent *Object, bit string) (*Object, bool) {
	bit = strings.ToUpper(bit)
	id := parent.ID + "." + bit
	if o, ok := p.Lookup(id); ok {
		return o, true
	}
	cell, ok := parent.ChildVar(bit)
	if !ok {
		return nil, false
	}
	return p.NewVariable(id, cell), true
}

// Resolve finds the cell named by ref: an object id, optionally followed by
// a dot and a bit name.
func (p *Program) Resolve(ref string) (*cells.Cell, error) {
	ref = strings.ToUpper(ref)
	if o, ok := p.Lookup(ref); ok {
		if c := o.DefaultCell(); c != nil {
			return c, nil
		}
		return nil, fmt.Errorf("%s: %w", ref, ErrNoValue)
	}
	name, bit, ok := strings.Cut(ref, ".")
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, ErrObjectNotFound)
	}
	o, ok := p.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrObjectNotFound)
	}
	c, ok := o.ChildVar(bit)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, ErrNoValue)
	}
	return c, nil
}

// Set writes value into the cell named by ref.
func (p *Program) Set(ref string, value string) error {
	c, err := p.Resolve(ref)
	if err != nil {
		return err
	}
	c.SetString(value)
	return nil
}

// ResetObject clears a timer or counter by id.
func (p *Program) ResetObject(id string) error {
	o, ok := p.Lookup(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrObjectNotFound)
	}
	if err := o.Reset(); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	return nil
}

// Scan runs every rung once: line states are propagated from the initial
// wrappers, then each distinct object of the rung is updated in order.
func (p *Program) Scan(ctx context.Context) {
	p.scans++
	ctx = logs.WithScan(ctx, p.scans)
	for _, rung := range p.rungs {
		for _, h := range rung.Initial {
			p.propagate(rung.Index, h, true)
		}
		for _, h := range rung.objects {
			p.objects[h].update(ctx, p)
		}
	}
}

// RemoteRecord answers peers with the default cell of id.
func (p *Program) RemoteRecord(id string) (cells.Kind, string, bool) {
	c, err := p.Resolve(id)
	if err != nil {
		return cells.KindInvalid, "", false
	}
	return c.Kind(), c.String(), true
}
