package scripts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/reusee/ladder/cells"
	"github.com/reusee/ladder/clocks"
	"github.com/reusee/ladder/plcs"
	"github.com/reusee/ladder/vars"
)

type pendingMath struct {
	line   sourceLine
	object *plcs.Object
	args   []string
}

type parser struct {
	program *plcs.Program
	pending []pendingMath
}

// declare creates the object NAME=TAG(ARGS). A name that already exists
// resolves to the existing object.
func (p *parser) declare(line sourceLine, name string, c call) error {
	if existing, ok := p.program.Lookup(name); ok {
		if logger := p.program.Env().Logger; logger != nil {
			logger.Warn("duplicate declaration",
				"line", line.Num,
				"name", name,
				"type", existing.Kind.String(),
			)
		}
		return nil
	}

	fail := func(token string, err error) error {
		return lineError(line.Num, token, err)
	}

	switch c.Tag {

	case "INPUT", "IN":
		pin, nc, flags, token, err := ioArgs(c.Args, "ANALOG", "A", "VIRTUAL", "V")
		if err != nil {
			return fail(token, err)
		}
		virtual := flags["VIRTUAL"] || flags["V"]
		if pin < 0 && !virtual {
			return fail(c.Tag, ErrInsufficientArgs)
		}
		p.program.NewInput(name, max(pin, 0), nc, flags["ANALOG"] || flags["A"], virtual)

	case "OUTPUT", "OUT":
		pin, nc, flags, token, err := ioArgs(c.Args, "VIRTUAL", "V")
		if err != nil {
			return fail(token, err)
		}
		virtual := flags["VIRTUAL"] || flags["V"]
		if pin < 0 && !virtual {
			return fail(c.Tag, ErrInsufficientArgs)
		}
		p.program.NewOutput(name, max(pin, 0), nc, virtual)

	case "VIRTUAL", "VIRT", "COIL":
		if len(c.Args) > 0 {
			return fail(c.Args[0], ErrUnknownArgs)
		}
		p.program.NewVirtual(name)

	case "ONESHOT", "OS", "ONS":
		if len(c.Args) > 0 {
			return fail(c.Args[0], ErrUnknownArgs)
		}
		p.program.NewOneShot(name)

	case "TIMER", "TMR":
		delay := int64(-1)
		mode := plcs.TON
		for _, arg := range c.Args {
			if n, err := strconv.ParseInt(arg, 10, 64); err == nil && n >= 0 && delay < 0 {
				delay = n
				continue
			}
			switch arg {
			case "TON":
				mode = plcs.TON
			case "TOF":
				mode = plcs.TOF
			case "RTO", "RET":
				mode = plcs.RTO
			default:
				return fail(arg, ErrUnknownArgs)
			}
		}
		if delay < 0 {
			return fail(c.Tag, ErrInsufficientArgs)
		}
		p.program.NewTimer(name, time.Duration(delay)*time.Millisecond, mode)

	case "COUNTER", "CNTR", "CTR":
		count := int64(-1)
		down := false
		for _, arg := range c.Args {
			if n, err := strconv.ParseInt(arg, 10, 64); err == nil && n >= 0 && count < 0 {
				count = n
				continue
			}
			switch arg {
			case "CTU":
				down = false
			case "CTD":
				down = true
			default:
				return fail(arg, ErrUnknownArgs)
			}
		}
		if count < 0 {
			return fail(c.Tag, ErrInsufficientArgs)
		}
		p.program.NewCounter(name, count, down)

	case "CLOCK", "CLK":
		if len(c.Args) == 0 {
			return fail(c.Tag, ErrInsufficientArgs)
		}
		preset, err := clocks.ParsePreset(c.Args)
		if err != nil {
			return fail(strings.Join(c.Args, ","), fmt.Errorf("%w: %w", ErrUnknownArgs, err))
		}
		p.program.NewClock(name, preset)

	case "VARIABLE", "VAR":
		cell, token, err := variableCell(c.Args)
		if err != nil {
			return fail(token, err)
		}
		p.program.NewVariable(name, cell)

	case "REMOTE", "REM", "CAN":
		addr, refresh, token, err := remoteArgs(c.Args)
		if err != nil {
			return fail(token, err)
		}
		if addr == "" {
			return fail(c.Tag, ErrInsufficientArgs)
		}
		if c.Tag == "CAN" {
			p.program.NewCAN(name, addr, refresh)
		} else {
			p.program.NewRemote(name, addr, refresh)
		}

	default:
		op, ok := plcs.ParseMathOp(c.Tag)
		if !ok {
			return fail(c.Tag, ErrUnknownType)
		}
		want := op.Operands()
		if len(c.Args) < want {
			return fail(c.Tag, ErrInsufficientArgs)
		}
		limit := want + 1
		if op.InPlace() {
			limit = want
		}
		if len(c.Args) > limit {
			return fail(c.Args[limit], ErrUnknownArgs)
		}
		p.pending = append(p.pending, pendingMath{
			line:   line,
			object: p.program.NewMath(name, op),
			args:   c.Args,
		})

	}

	return nil
}

// ioArgs reads a pin number, NO/NC and the named flags in any order. pin is
// negative when absent.
func ioArgs(args []string, flagNames ...string) (pin int, nc bool, flags map[string]bool, token string, err error) {
	pin = -1
	flags = make(map[string]bool)
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil && n >= 0 && pin < 0 {
			pin = n
			continue
		}
		if v, ok := vars.StrToLogic(arg); ok {
			nc = v
			continue
		}
		known := false
		for _, name := range flagNames {
			if arg == name {
				flags[name] = true
				known = true
			}
		}
		if !known {
			return 0, false, nil, arg, ErrUnknownArgs
		}
	}
	return
}

// variableCell builds the cell of VARIABLE([type][,initial]). Without a type
// the kind follows the initial literal.
func variableCell(args []string) (*cells.Cell, string, error) {
	kind := cells.KindInvalid
	initial := ""
	hasInitial := false
	for i, arg := range args {
		if i == 0 {
			if k, ok := cells.ParseKind(arg); ok {
				kind = k
				continue
			}
		}
		if hasInitial {
			return nil, arg, ErrUnknownArgs
		}
		initial = arg
		hasInitial = true
	}
	if kind == cells.KindInvalid {
		kind = literalKind(initial)
	}
	cell := cells.New(kind)
	if hasInitial {
		cell.SetString(initial)
	}
	return cell, "", nil
}

func literalKind(literal string) cells.Kind {
	if literal == "" {
		return cells.KindInt32
	}
	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		if n >= -1<<31 && n < 1<<31 {
			return cells.KindInt32
		}
		return cells.KindInt64
	}
	if _, err := strconv.ParseFloat(literal, 64); err == nil {
		return cells.KindFloat64
	}
	switch literal {
	case "TRUE", "FALSE":
		return cells.KindBool
	}
	return cells.KindString
}

func remoteArgs(args []string) (addr string, refresh time.Duration, token string, err error) {
	for _, arg := range args {
		if n, err := strconv.ParseUint(arg, 10, 32); err == nil {
			if refresh != 0 {
				return "", 0, arg, ErrUnknownArgs
			}
			refresh = time.Duration(n) * time.Millisecond
			continue
		}
		if addr != "" {
			return "", 0, arg, ErrUnknownArgs
		}
		addr = strings.ToLower(arg)
	}
	return
}
