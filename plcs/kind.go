package plcs

type Kind uint8

const (
	KindInvalid Kind = iota
	KindInput
	KindOutput
	KindVirtual
	KindTimer
	KindCounter
	KindOneShot
	KindClock
	KindMath
	KindVariable
	KindRemote
	KindRemoteChild
	KindCAN
)

var kindDisplay = [...]string{
	KindInvalid:     "?",
	KindInput:       "IN",
	KindOutput:      "OUT",
	KindVirtual:     "VIRT",
	KindTimer:       "TMR",
	KindCounter:     "CNTR",
	KindOneShot:     "OS",
	KindClock:       "CLK",
	KindMath:        "MATH",
	KindVariable:    "VAR",
	KindRemote:      "REM",
	KindRemoteChild: "RVAL",
	KindCAN:         "CAN",
}

// String is the short display name used by status pages.
func (k Kind) String() string {
	if int(k) < len(kindDisplay) {
		return kindDisplay[k]
	}
	return kindDisplay[KindInvalid]
}

// drivenByCoil kinds only act in update when energized through a coil.
func (k Kind) drivenByCoil() bool {
	switch k {
	case KindOutput, KindVirtual, KindTimer, KindCounter:
		return true
	}
	return false
}
