package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

type ModuleForSimulation struct {
	dscope.Module
}

func ForSimulation() ModuleForSimulation {
	return ModuleForSimulation{}
}

func (ModuleForSimulation) T() *testing.T {
	return nil
}

func (ModuleForSimulation) Mode() Mode {
	return ModeSimulation
}
