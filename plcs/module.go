package plcs

import (
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/ladder/clocks"
	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/nets"
	"github.com/reusee/ladder/pins"
	"github.com/reusee/ladder/plcconfigs"
	"github.com/reusee/ladder/remotes"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Pins    pins.Module
	Clocks  clocks.Module
	Remotes remotes.Module
	Configs plcconfigs.Module
}

func (Module) Env(
	board pins.Board,
	clock clocks.Clock,
	logger logs.Logger,
	dial remotes.Dial,
	timeout plcconfigs.RemoteTimeout,
	retries plcconfigs.RemoteRetries,
	refresh plcconfigs.RemoteRefresh,
) Env {
	return Env{
		Board:         board,
		Clock:         clock,
		Logger:        logger,
		Dial:          dial,
		RemoteTimeout: time.Duration(timeout),
		RemoteRetries: int(retries),
		RemoteRefresh: time.Duration(refresh),
	}
}

func (Module) Program(
	env Env,
) *Program {
	return NewProgram(env)
}

func (Module) Runner(
	program *Program,
	period plcconfigs.ScanPeriod,
	recheck plcconfigs.RemoteRecheck,
	nist plcconfigs.NISTUpdateFrequency,
	system *clocks.System,
	dialer nets.Dialer,
	logger logs.Logger,
) *Runner {
	runner := NewRunner(program, time.Duration(period), time.Duration(recheck), logger)
	if nist > 0 {
		runner.SyncClock(system, dialer.DialContext, clocks.NISTAddr, time.Duration(nist))
	}
	return runner
}
