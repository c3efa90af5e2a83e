package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/ladder/debugs"
	"github.com/reusee/ladder/plcconfigs"
	"github.com/reusee/ladder/plcs"
	"github.com/reusee/ladder/scripts"
)

type Module struct {
	dscope.Module
	Plcs    plcs.Module
	Scripts scripts.Module
	Debugs  debugs.Module
	Configs plcconfigs.Module
}
