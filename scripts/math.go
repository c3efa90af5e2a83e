package scripts

import (
	"strconv"
	"strings"

	"github.com/reusee/ladder/cells"
)

// bindMath resolves the operands of math blocks once every declaration is
// known. A missing destination name becomes an implicit variable.
func (p *parser) bindMath() error {
	for _, pending := range p.pending {
		op := pending.object.Math().Op
		args := pending.args
		fail := func(token string, err error) error {
			return lineError(pending.line.Num, token, err)
		}

		a, err := p.operandCell(args[0], op.InPlace())
		if err != nil {
			return fail(args[0], err)
		}
		var b *cells.Cell
		if op.Operands() > 1 {
			b, err = p.operandCell(args[1], false)
			if err != nil {
				return fail(args[1], err)
			}
		}

		var dest *cells.Cell
		kind := op.ResultKind(a, b)
		if n := op.Operands(); len(args) > n {
			dest, err = p.destinationCell(args[n], kind)
			if err != nil {
				return fail(args[n], err)
			}
		} else if !op.InPlace() {
			dest = cells.New(kind)
		}

		if err := p.program.BindMath(pending.object, a, b, dest); err != nil {
			return fail(pending.object.ID, ErrCreationFailed)
		}
	}
	p.pending = nil
	return nil
}

// operandCell resolves a literal or a reference. Literals are rejected where
// the operand is written to.
func (p *parser) operandCell(arg string, writable bool) (*cells.Cell, error) {
	if cell, ok := literalCell(arg); ok {
		if writable {
			return nil, ErrUnknownArgs
		}
		return cell, nil
	}
	r, err := parseRef(arg)
	if err != nil {
		return nil, err
	}
	if r.Not {
		return nil, ErrUnknownArgs
	}
	return p.refCell(r)
}

func (p *parser) refCell(r ref) (*cells.Cell, error) {
	obj, ok := p.program.Lookup(r.Name)
	if !ok {
		return nil, ErrInvalidObject
	}
	if r.HasAccessor() {
		// proxies carry no value before the first exchange
		return nil, ErrInvalidObject
	}
	if r.Bit != "" {
		cell, ok := obj.ChildVar(r.Bit)
		if !ok {
			return nil, ErrInvalidBit
		}
		return cell, nil
	}
	cell := obj.DefaultCell()
	if cell == nil {
		return nil, ErrInvalidObject
	}
	return cell, nil
}

func (p *parser) destinationCell(arg string, kind cells.Kind) (*cells.Cell, error) {
	if _, ok := literalCell(arg); ok {
		return nil, ErrUnknownArgs
	}
	r, err := parseRef(arg)
	if err != nil {
		return nil, err
	}
	if r.Not {
		return nil, ErrUnknownArgs
	}
	if _, ok := p.program.Lookup(r.Name); ok || r.Bit != "" || r.HasAccessor() {
		return p.refCell(r)
	}
	return p.program.NewVariable(r.Name, cells.New(kind)).DefaultCell(), nil
}

// literalCell parses numeric literals. Integers without a sign are unsigned.
func literalCell(arg string) (*cells.Cell, bool) {
	if n, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return cells.From(n), true
	}
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return cells.From(n), true
	}
	if strings.ContainsAny(arg, ".0123456789") {
		if f, err := strconv.ParseFloat(arg, 64); err == nil {
			return cells.From(f), true
		}
	}
	return nil, false
}
