package cells

import "strings"

type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindUint8
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat64
	KindString
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindInt32:   "int32",
	KindUint32:  "uint32",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindFloat64: "float64",
	KindString:  "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

func (k Kind) Valid() bool {
	return k > KindInvalid && k <= KindString
}

func (k Kind) IsUnsigned() bool {
	switch k {
	case KindBool, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
	return false
}

func (k Kind) IsSigned() bool {
	return k == KindInt32 || k == KindInt64
}

func (k Kind) IsFloat() bool {
	return k == KindFloat64
}

// ParseKind maps a script type name to a kind.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToUpper(name) {
	case "BOOL", "BIT":
		return KindBool, true
	case "UINT8", "BYTE":
		return KindUint8, true
	case "UINT16", "WORD":
		return KindUint16, true
	case "INT32", "INT":
		return KindInt32, true
	case "UINT32", "UINT", "DWORD":
		return KindUint32, true
	case "INT64", "LONG":
		return KindInt64, true
	case "UINT64", "ULONG":
		return KindUint64, true
	case "FLOAT", "DOUBLE", "FLOAT64", "REAL":
		return KindFloat64, true
	case "STRING", "STR":
		return KindString, true
	}
	return KindInvalid, false
}
