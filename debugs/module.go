package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/plcs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
	Plcs plcs.Module
}
