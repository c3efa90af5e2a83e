package scripts

type scanState uint8

const (
	stateObjectName scanState = iota
	stateBitName
	stateAccessorName
	stateAccessorDone
)

// ref is one operand token: /NAME, NAME.BIT or NAME[REMOTE_ID].
type ref struct {
	Not      bool
	Name     string
	Bit      string
	Accessor string
}

func (r ref) HasAccessor() bool {
	return r.Accessor != ""
}

// parseRef scans token one byte at a time. Each / before the name toggles
// negation; / anywhere else is rejected.
func parseRef(token string) (ret ref, err error) {
	state := stateObjectName
	var name, bit, accessor []byte
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch state {

		case stateObjectName:
			switch {
			case c == '/':
				if len(name) > 0 {
					return ret, ErrParserFailed
				}
				ret.Not = !ret.Not
			case c == '.':
				if len(name) == 0 {
					return ret, ErrInvalidObject
				}
				state = stateBitName
			case c == '[':
				if len(name) == 0 {
					return ret, ErrInvalidObject
				}
				state = stateAccessorName
			case c == '(':
				return ret, ErrParserFailed
			case isNameChar(c):
				name = append(name, c)
			default:
				return ret, ErrInvalidObject
			}

		case stateBitName:
			if !isNameChar(c) {
				return ret, ErrInvalidBit
			}
			bit = append(bit, c)

		case stateAccessorName:
			switch c {
			case ']':
				state = stateAccessorDone
			case '[', '/':
				return ret, ErrInvalidObject
			default:
				accessor = append(accessor, c)
			}

		case stateAccessorDone:
			return ret, ErrInvalidObject

		}
	}

	switch {
	case len(name) == 0:
		return ret, ErrInvalidObject
	case state == stateBitName && len(bit) == 0:
		return ret, ErrInvalidBit
	case state == stateAccessorName:
		return ret, ErrParserFailed
	case state == stateAccessorDone && len(accessor) == 0:
		return ret, ErrInvalidObject
	}

	ret.Name = string(name)
	ret.Bit = string(bit)
	ret.Accessor = string(accessor)
	return ret, nil
}
