package clocks

import (
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

func (Module) System() *System {
	return new(System)
}

func (Module) Clock(
	system *System,
) Clock {
	return system
}
