package cells

import (
	"math"
	"strconv"

	"github.com/reusee/ladder/vars"
)

// Cell holds one typed value, either owned or aliasing another cell.
// The kind is fixed at construction; setters coerce into it.
type Cell struct {
	kind  Kind
	alias *Cell

	b bool
	u uint64
	i int64
	f float64
	s string
}

func New(kind Kind) *Cell {
	return &Cell{
		kind: kind,
	}
}

// Alias returns a cell that reads and writes through to target.
func Alias(target *Cell) *Cell {
	return &Cell{
		kind:  target.kind,
		alias: target,
	}
}

func (c *Cell) Kind() Kind {
	return c.kind
}

func (c *Cell) IsAlias() bool {
	return c.alias != nil
}

func (c *Cell) owner() *Cell {
	for c.alias != nil {
		c = c.alias
	}
	return c
}

// Bool reports the truthiness of the cell. Numbers are true only above 1.
func (c *Cell) Bool() bool {
	c = c.owner()
	switch c.kind {
	case KindBool:
		return c.b
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return c.u > 1
	case KindInt32, KindInt64:
		return c.i > 1
	case KindFloat64:
		return c.f > 1
	case KindString:
		return vars.StrToBool(c.s)
	}
	return false
}

func (c *Cell) Int() int64 {
	c = c.owner()
	switch c.kind {
	case KindBool:
		return boolToInt(c.b)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return int64(c.u)
	case KindInt32, KindInt64:
		return c.i
	case KindFloat64:
		return int64(c.f)
	case KindString:
		v, _ := strconv.ParseInt(extractNumber(c.s, false), 10, 64)
		return v
	}
	return 0
}

func (c *Cell) Uint() uint64 {
	c = c.owner()
	switch c.kind {
	case KindBool:
		return uint64(boolToInt(c.b))
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return c.u
	case KindInt32, KindInt64:
		return uint64(c.i)
	case KindFloat64:
		return floatToUint(c.f)
	case KindString:
		v, _ := strconv.ParseInt(extractNumber(c.s, false), 10, 64)
		return uint64(v)
	}
	return 0
}

func (c *Cell) Float() float64 {
	c = c.owner()
	switch c.kind {
	case KindBool:
		return float64(boolToInt(c.b))
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return float64(c.u)
	case KindInt32, KindInt64:
		return float64(c.i)
	case KindFloat64:
		return c.f
	case KindString:
		v, _ := strconv.ParseFloat(extractNumber(c.s, true), 64)
		return v
	}
	return 0
}

func (c *Cell) String() string {
	c = c.owner()
	switch c.kind {
	case KindBool:
		return strconv.FormatBool(c.b)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(c.u, 10)
	case KindInt32, KindInt64:
		return strconv.FormatInt(c.i, 10)
	case KindFloat64:
		return strconv.FormatFloat(c.f, 'f', -1, 64)
	case KindString:
		return c.s
	}
	return ""
}

// Value returns the stored value in its natural Go type.
func (c *Cell) Value() any {
	c = c.owner()
	switch c.kind {
	case KindBool:
		return c.b
	case KindUint8:
		return uint8(c.u)
	case KindUint16:
		return uint16(c.u)
	case KindUint32:
		return uint32(c.u)
	case KindUint64:
		return c.u
	case KindInt32:
		return int32(c.i)
	case KindInt64:
		return c.i
	case KindFloat64:
		return c.f
	case KindString:
		return c.s
	}
	return nil
}

func (c *Cell) SetBool(v bool) {
	c = c.owner()
	switch c.kind {
	case KindBool:
		c.b = v
	case KindString:
		c.s = strconv.FormatBool(v)
	default:
		c.SetInt(boolToInt(v))
	}
}

func (c *Cell) SetInt(v int64) {
	c = c.owner()
	switch c.kind {
	case KindBool:
		c.b = v > 1
	case KindUint8, KindUint16, KindUint32, KindUint64:
		c.storeUint(uint64(v))
	case KindInt32, KindInt64:
		c.storeInt(v)
	case KindFloat64:
		c.f = float64(v)
	case KindString:
		c.s = strconv.FormatInt(v, 10)
	}
}

func (c *Cell) SetUint(v uint64) {
	c = c.owner()
	switch c.kind {
	case KindBool:
		c.b = v > 1
	case KindUint8, KindUint16, KindUint32, KindUint64:
		c.storeUint(v)
	case KindInt32, KindInt64:
		c.storeInt(int64(v))
	case KindFloat64:
		c.f = float64(v)
	case KindString:
		c.s = strconv.FormatUint(v, 10)
	}
}

func (c *Cell) SetFloat(v float64) {
	c = c.owner()
	switch c.kind {
	case KindBool:
		c.b = v > 1
	case KindUint8, KindUint16, KindUint32, KindUint64:
		c.storeUint(floatToUint(v))
	case KindInt32, KindInt64:
		c.storeInt(floatToInt(v))
	case KindFloat64:
		c.f = v
	case KindString:
		c.s = strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// SetString parses the numeric characters out of str and stores them.
// Input without digits stores zero.
func (c *Cell) SetString(str string) {
	c = c.owner()
	switch c.kind {
	case KindBool:
		c.b = vars.StrToBool(str)
	case KindString:
		c.s = str
	case KindFloat64:
		v, _ := strconv.ParseFloat(extractNumber(str, true), 64)
		c.f = v
	default:
		v, _ := strconv.ParseInt(extractNumber(str, false), 10, 64)
		c.SetInt(v)
	}
}

// Copy assigns src to dst using src's natural type.
func Copy(dst, src *Cell) {
	switch src.Kind() {
	case KindBool:
		dst.SetBool(src.Bool())
	case KindUint8, KindUint16, KindUint32, KindUint64:
		dst.SetUint(src.Uint())
	case KindInt32, KindInt64:
		dst.SetInt(src.Int())
	case KindFloat64:
		dst.SetFloat(src.Float())
	case KindString:
		dst.SetString(src.String())
	}
}

func (c *Cell) storeUint(v uint64) {
	switch c.kind {
	case KindUint8:
		v = uint64(uint8(v))
	case KindUint16:
		v = uint64(uint16(v))
	case KindUint32:
		v = uint64(uint32(v))
	}
	c.u = v
}

func (c *Cell) storeInt(v int64) {
	if c.kind == KindInt32 {
		v = int64(int32(v))
	}
	c.i = v
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func floatToUint(f float64) uint64 {
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(f)
}

func floatToInt(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(f)
}

// extractNumber keeps digits, a leading sign and optionally the first dot.
func extractNumber(str string, allowDot bool) string {
	buf := make([]byte, 0, len(str))
	negative := false
	seenDigit := false
	seenDot := false
	for i := 0; i < len(str); i++ {
		b := str[i]
		switch {
		case b >= '0' && b <= '9':
			buf = append(buf, b)
			seenDigit = true
		case b == '-' && !seenDigit:
			negative = true
		case b == '.' && allowDot && !seenDot:
			buf = append(buf, b)
			seenDot = true
		}
	}
	if !seenDigit {
		return "0"
	}
	if negative {
		return "-" + string(buf)
	}
	return string(buf)
}
