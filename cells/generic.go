package cells

type Scalar interface {
	bool | uint8 | uint16 | int32 | uint32 | int64 | uint64 | float64 | string
}

func Get[T Scalar](c *Cell) T {
	var ret T
	switch p := any(&ret).(type) {
	case *bool:
		*p = c.Bool()
	case *uint8:
		*p = uint8(c.Uint())
	case *uint16:
		*p = uint16(c.Uint())
	case *int32:
		*p = int32(c.Int())
	case *uint32:
		*p = uint32(c.Uint())
	case *int64:
		*p = c.Int()
	case *uint64:
		*p = c.Uint()
	case *float64:
		*p = c.Float()
	case *string:
		*p = c.String()
	}
	return ret
}

func Set[T Scalar](c *Cell, value T) {
	switch v := any(value).(type) {
	case bool:
		c.SetBool(v)
	case uint8:
		c.SetUint(uint64(v))
	case uint16:
		c.SetUint(uint64(v))
	case int32:
		c.SetInt(int64(v))
	case uint32:
		c.SetUint(uint64(v))
	case int64:
		c.SetInt(v)
	case uint64:
		c.SetUint(v)
	case float64:
		c.SetFloat(v)
	case string:
		c.SetString(v)
	}
}

// From returns an owned cell holding value.
func From[T Scalar](value T) *Cell {
	var kind Kind
	switch any(value).(type) {
	case bool:
		kind = KindBool
	case uint8:
		kind = KindUint8
	case uint16:
		kind = KindUint16
	case int32:
		kind = KindInt32
	case uint32:
		kind = KindUint32
	case int64:
		kind = KindInt64
	case uint64:
		kind = KindUint64
	case float64:
		kind = KindFloat64
	case string:
		kind = KindString
	}
	c := New(kind)
	Set(c, value)
	return c
}
