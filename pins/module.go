package pins

import (
	"github.com/reusee/dscope"
	"github.com/reusee/ladder/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

func (Module) Board(
	logger logs.Logger,
) Board {
	logger.Info("io board", "kind", "memory")
	return NewMemory()
}
