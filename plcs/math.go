package plcs

import (
	"math"
	"strings"

	"github.com/reusee/ladder/cells"
)

type MathOp uint8

const (
	OpInvalid MathOp = iota
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpInc
	OpDec
	OpMov
)

var mathOpNames = map[string]MathOp{
	"SIN":  OpSin,
	"COS":  OpCos,
	"TAN":  OpTan,
	"ASIN": OpAsin,
	"ACOS": OpAcos,
	"ATAN": OpAtan,
	"ADD":  OpAdd,
	"SUB":  OpSub,
	"MUL":  OpMul,
	"DIV":  OpDiv,
	"EQ":   OpEq,
	"NEQ":  OpNeq,
	"GRE":  OpGt,
	"GT":   OpGt,
	"GRQ":  OpGte,
	"GTE":  OpGte,
	"LES":  OpLt,
	"LT":   OpLt,
	"LEQ":  OpLte,
	"LTE":  OpLte,
	"INC":  OpInc,
	"DEC":  OpDec,
	"MOV":  OpMov,
	"MOVE": OpMov,
}

func ParseMathOp(tag string) (MathOp, bool) {
	op, ok := mathOpNames[strings.ToUpper(tag)]
	return op, ok
}

func (op MathOp) String() string {
	switch op {
	case OpSin:
		return "SIN"
	case OpCos:
		return "COS"
	case OpTan:
		return "TAN"
	case OpAsin:
		return "ASIN"
	case OpAcos:
		return "ACOS"
	case OpAtan:
		return "ATAN"
	case OpAdd:
		return "ADD"
	case OpSub:
		return "SUB"
	case OpMul:
		return "MUL"
	case OpDiv:
		return "DIV"
	case OpEq:
		return "EQ"
	case OpNeq:
		return "NEQ"
	case OpGt:
		return "GT"
	case OpGte:
		return "GTE"
	case OpLt:
		return "LT"
	case OpLte:
		return "LTE"
	case OpInc:
		return "INC"
	case OpDec:
		return "DEC"
	case OpMov:
		return "MOV"
	}
	return "?"
}

// Operands is the number of source operands op reads.
func (op MathOp) Operands() int {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv,
		OpEq, OpNeq, OpGt, OpGte, OpLt, OpLte:
		return 2
	}
	return 1
}

func (op MathOp) compares() bool {
	return op >= OpEq && op <= OpLte
}

func (op MathOp) trig() bool {
	return op >= OpSin && op <= OpAtan
}

// InPlace ops modify their first operand and take no destination.
func (op MathOp) InPlace() bool {
	return op == OpInc || op == OpDec
}

type domain uint8

const (
	domainSigned domain = iota
	domainUnsigned
	domainFloat
)

func domainOf(a, b *cells.Cell) domain {
	if a.Kind().IsFloat() || (b != nil && b.Kind().IsFloat()) {
		return domainFloat
	}
	if a.Kind().IsUnsigned() && (b == nil || b.Kind().IsUnsigned()) {
		return domainUnsigned
	}
	return domainSigned
}

// ResultKind is the kind of an implicit destination for op over a and b.
func (op MathOp) ResultKind(a, b *cells.Cell) cells.Kind {
	switch {
	case op.compares():
		return cells.KindBool
	case op.trig():
		return cells.KindFloat64
	case op == OpMov:
		return a.Kind()
	}
	switch domainOf(a, b) {
	case domainFloat:
		return cells.KindFloat64
	case domainUnsigned:
		return cells.KindUint64
	}
	return cells.KindInt64
}

type Math struct {
	Op MathOp

	a    *cells.Cell
	b    *cells.Cell
	dest *cells.Cell
}

// Bind sets the operand cells. dest is ignored by in-place ops.
func (m *Math) Bind(a, b, dest *cells.Cell) {
	m.a = a
	m.b = b
	if m.Op.InPlace() {
		m.dest = a
	} else {
		m.dest = dest
	}
}

func (m *Math) bound() bool {
	return m.a != nil && m.dest != nil && (m.Op.Operands() < 2 || m.b != nil)
}

func (m *Math) compare() bool {
	if !m.bound() {
		return false
	}
	var cmp int
	switch domainOf(m.a, m.b) {
	case domainFloat:
		cmp = compareOrdered(m.a.Float(), m.b.Float())
	case domainUnsigned:
		cmp = compareOrdered(m.a.Uint(), m.b.Uint())
	default:
		cmp = compareOrdered(m.a.Int(), m.b.Int())
	}
	var ret bool
	switch m.Op {
	case OpEq:
		ret = cmp == 0
	case OpNeq:
		ret = cmp != 0
	case OpGt:
		ret = cmp > 0
	case OpGte:
		ret = cmp >= 0
	case OpLt:
		ret = cmp < 0
	case OpLte:
		ret = cmp <= 0
	}
	m.dest.SetBool(ret)
	return ret
}

func compareOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (m *Math) run() {
	if !m.bound() {
		return
	}
	switch m.Op {
	case OpSin:
		m.dest.SetFloat(math.Sin(m.a.Float()))
	case OpCos:
		m.dest.SetFloat(math.Cos(m.a.Float()))
	case OpTan:
		m.dest.SetFloat(math.Tan(m.a.Float()))
	case OpAsin:
		m.dest.SetFloat(math.Asin(m.a.Float()))
	case OpAcos:
		m.dest.SetFloat(math.Acos(m.a.Float()))
	case OpAtan:
		m.dest.SetFloat(math.Atan(m.a.Float()))
	case OpMov:
		cells.Copy(m.dest, m.a)
	case OpInc, OpDec:
		m.step()
	case OpAdd, OpSub, OpMul, OpDiv:
		m.arith()
	}
}

func (m *Math) step() {
	delta := int64(1)
	if m.Op == OpDec {
		delta = -1
	}
	switch domainOf(m.a, nil) {
	case domainFloat:
		m.a.SetFloat(m.a.Float() + float64(delta))
	case domainUnsigned:
		m.a.SetUint(m.a.Uint() + uint64(delta))
	default:
		m.a.SetInt(m.a.Int() + delta)
	}
}

// arith leaves dest untouched on division by zero.
func (m *Math) arith() {
	switch domainOf(m.a, m.b) {

	case domainFloat:
		a, b := m.a.Float(), m.b.Float()
		switch m.Op {
		case OpAdd:
			m.dest.SetFloat(a + b)
		case OpSub:
			m.dest.SetFloat(a - b)
		case OpMul:
			m.dest.SetFloat(a * b)
		case OpDiv:
			if b != 0 {
				m.dest.SetFloat(a / b)
			}
		}

	case domainUnsigned:
		a, b := m.a.Uint(), m.b.Uint()
		switch m.Op {
		case OpAdd:
			m.dest.SetUint(a + b)
		case OpSub:
			m.dest.SetUint(a - b)
		case OpMul:
			m.dest.SetUint(a * b)
		case OpDiv:
			if b != 0 {
				m.dest.SetUint(a / b)
			}
		}

	default:
		a, b := m.a.Int(), m.b.Int()
		switch m.Op {
		case OpAdd:
			m.dest.SetInt(a + b)
		case OpSub:
			m.dest.SetInt(a - b)
		case OpMul:
			m.dest.SetInt(a * b)
		case OpDiv:
			if b != 0 {
				m.dest.SetInt(a / b)
			}
		}

	}
}
