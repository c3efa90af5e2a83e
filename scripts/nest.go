package scripts

import (
	"strings"

	"github.com/reusee/ladder/plcs"
)

// Nest is one parenthesized tier of a rung expression.
type Nest struct {
	Tier int
	// wrappers joined in series at this tier
	Ands []plcs.WrapperHandle
	// first wrappers of each parallel branch
	Ors []plcs.WrapperHandle
	// coil targets, only on the root
	Assigns  []plcs.WrapperHandle
	Children []*Nest

	// wrappers entered and left by power flowing through the nest
	First []plcs.WrapperHandle
	Last  []plcs.WrapperHandle
}

type rungBuilder struct {
	program  *plcs.Program
	line     sourceLine
	index    int
	wrappers []plcs.WrapperHandle
}

func (b *rungBuilder) fail(token string, err error) error {
	return lineError(b.line.Num, token, err)
}

// group parses OR branches of AND chains.
func (b *rungBuilder) group(expr string, tier int) (*Nest, error) {
	nest := &Nest{
		Tier: tier,
	}
	branches, err := splitTop(expr, '+')
	if err != nil {
		return nil, b.fail(expr, err)
	}
	for _, branch := range branches {
		first, last, err := b.series(branch, nest)
		if err != nil {
			return nil, err
		}
		nest.First = append(nest.First, first...)
		nest.Last = append(nest.Last, last...)
		if len(branches) > 1 {
			nest.Ors = append(nest.Ors, first...)
		}
	}
	return nest, nil
}

func (b *rungBuilder) series(branch string, nest *Nest) (first, last []plcs.WrapperHandle, err error) {
	factors, err := splitTop(branch, '*')
	if err != nil {
		return nil, nil, b.fail(branch, err)
	}
	for _, factor := range factors {
		if factor == "" {
			return nil, nil, b.fail(branch, ErrParserFailed)
		}

		var entry, exit []plcs.WrapperHandle
		switch {

		case strings.HasPrefix(strings.TrimLeft(factor, "/"), "("):
			if factor[0] == '/' {
				// negation applies to single operands only
				return nil, nil, b.fail(factor, ErrParserFailed)
			}
			if !strings.HasSuffix(factor, ")") {
				return nil, nil, b.fail(factor, ErrParserFailed)
			}
			inner := factor[1 : len(factor)-1]
			if inner == "" {
				return nil, nil, b.fail(factor, ErrParserFailed)
			}
			if _, err := splitTop(inner, 0); err != nil {
				return nil, nil, b.fail(factor, err)
			}
			child, err := b.group(inner, nest.Tier+1)
			if err != nil {
				return nil, nil, err
			}
			nest.Children = append(nest.Children, child)
			entry, exit = child.First, child.Last

		default:
			h, err := b.operand(factor, false)
			if err != nil {
				return nil, nil, err
			}
			nest.Ands = append(nest.Ands, h)
			entry, exit = []plcs.WrapperHandle{h}, []plcs.WrapperHandle{h}

		}

		for _, from := range last {
			for _, to := range entry {
				b.program.Wrapper(from).AddNext(b.index, to)
			}
		}
		if first == nil {
			first = entry
		}
		last = exit
	}
	return first, last, nil
}

// operand resolves a token to a new wrapper.
func (b *rungBuilder) operand(token string, coil bool) (plcs.WrapperHandle, error) {
	r, err := parseRef(token)
	if err != nil {
		return 0, b.fail(token, err)
	}
	obj, ok := b.program.Lookup(r.Name)
	if !ok {
		return 0, b.fail(r.Name, ErrInvalidObject)
	}
	if r.HasAccessor() {
		if coil {
			// proxies are read only
			return 0, b.fail(token, ErrInvalidObject)
		}
		obj, err = b.program.RemoteChild(obj, r.Accessor)
		if err != nil {
			return 0, b.fail(token, ErrInvalidObject)
		}
	}
	if r.Bit != "" {
		obj, ok = b.program.BitObject(obj, r.Bit)
		if !ok {
			return 0, b.fail(token, ErrInvalidBit)
		}
	}
	if coil && r.Not {
		return 0, b.fail(token, ErrParserFailed)
	}
	h := b.program.NewWrapper(obj.Handle, r.Not, coil)
	b.wrappers = append(b.wrappers, h)
	return h, nil
}
