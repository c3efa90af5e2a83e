package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/ladder/logs"
)

// Module needs a configs.Loader from the enclosing scope.
type Module struct {
	dscope.Module
	Logs logs.Module
}
