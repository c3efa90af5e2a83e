package plcs

type WrapperHandle int

// Wrapper is one appearance of an object in a rung. Its successors are kept
// per rung index.
type Wrapper struct {
	Handle WrapperHandle
	Object Handle
	Not    bool
	Coil   bool

	next map[int][]WrapperHandle
}

func (w *Wrapper) AddNext(rung int, next WrapperHandle) {
	if w.next == nil {
		w.next = make(map[int][]WrapperHandle)
	}
	for _, h := range w.next[rung] {
		if h == next {
			return
		}
	}
	w.next[rung] = append(w.next[rung], next)
}

func (w *Wrapper) Next(rung int) []WrapperHandle {
	return w.next[rung]
}

func (p *Program) NewWrapper(object Handle, not, coil bool) WrapperHandle {
	w := &Wrapper{
		Handle: WrapperHandle(len(p.wrappers)),
		Object: object,
		Not:    not,
		Coil:   coil,
	}
	p.wrappers = append(p.wrappers, w)
	if o := p.objects[object]; coil && o.Kind == KindOneShot {
		o.oneShot.coilDriven = true
	}
	return w.Handle
}

func (p *Program) Wrapper(h WrapperHandle) *Wrapper {
	return p.wrappers[h]
}

func (p *Program) propagate(rung int, h WrapperHandle, incoming bool) {
	w := p.wrappers[h]
	out := p.objects[w.Object].setLineState(p, incoming, w.Not, w.Coil)
	for _, next := range w.next[rung] {
		p.propagate(rung, next, out)
	}
}

// Rung is one compiled logic line.
type Rung struct {
	Index    int
	Line     int
	Source   string
	Wrappers []WrapperHandle
	Initial  []WrapperHandle

	// distinct objects in wrapper order
	objects []Handle
}

// NextRungIndex is the index the next added rung will get.
func (p *Program) NextRungIndex() int {
	return len(p.rungs)
}

func (p *Program) AddRung(rung *Rung) error {
	if len(rung.Wrappers) == 0 {
		return ErrEmptyRung
	}
	rung.Index = len(p.rungs)
	seen := make(map[Handle]bool)
	rung.objects = rung.objects[:0]
	for _, h := range rung.Wrappers {
		obj := p.wrappers[h].Object
		if seen[obj] {
			continue
		}
		seen[obj] = true
		rung.objects = append(rung.objects, obj)
	}
	p.rungs = append(p.rungs, rung)
	return nil
}

func (p *Program) Rungs() []*Rung {
	return p.rungs
}
