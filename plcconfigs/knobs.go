package plcconfigs

import (
	"time"

	"github.com/reusee/ladder/cmds"
	"github.com/reusee/ladder/configs"
	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/vars"
)

// ScanPeriod is the delay between scan cycles.
type ScanPeriod time.Duration

var scanPeriodFlag = cmds.Var[time.Duration]("-scan-period")

func (Module) ScanPeriod(
	loader configs.Loader,
) ScanPeriod {
	return ScanPeriod(vars.FirstNonZero(
		*scanPeriodFlag,
		milliseconds(configs.First[int](loader, "scan_period_ms")),
		10*time.Millisecond,
	))
}

type Verbosity int

var verbosityFlag = cmds.Var[int]("-verbosity")

// Verbosity also applies the level to the shared logger. Without flag or
// config the level set by -log-* flags is kept.
func (Module) Verbosity(
	loader configs.Loader,
) Verbosity {
	v := vars.FirstNonZero(
		*verbosityFlag,
		configs.First[int](loader, "verbosity"),
	)
	if v != 0 {
		logs.SetVerbosity(v)
	}
	return Verbosity(v)
}

// NISTUpdateFrequency is how often the wall clock is corrected. Zero disables
// correction.
type NISTUpdateFrequency time.Duration

func (Module) NISTUpdateFrequency(
	loader configs.Loader,
) NISTUpdateFrequency {
	return NISTUpdateFrequency(
		time.Duration(configs.First[int](loader, "nist_update_frequency_s")) * time.Second,
	)
}

type RemoteTimeout time.Duration

var remoteTimeoutFlag = cmds.Var[time.Duration]("-remote-timeout")

func (Module) RemoteTimeout(
	loader configs.Loader,
) RemoteTimeout {
	return RemoteTimeout(vars.FirstNonZero(
		*remoteTimeoutFlag,
		milliseconds(configs.First[int](loader, "remote_timeout_ms")),
		time.Second,
	))
}

type RemoteRetries int

var _ configs.Configurable = RemoteRetries(0)

func (RemoteRetries) ConfigExpr() string {
	return "remote_retries"
}

func (Module) RemoteRetries(
	loader configs.Loader,
) RemoteRetries {
	return RemoteRetries(vars.FirstNonZero(
		configs.First[int](loader, "remote_retries"),
		2,
	))
}

// RemoteRefresh is the default refresh period of remote accessors.
type RemoteRefresh time.Duration

func (Module) RemoteRefresh(
	loader configs.Loader,
) RemoteRefresh {
	return RemoteRefresh(vars.FirstNonZero(
		milliseconds(configs.First[int](loader, "remote_refresh_ms")),
		time.Second,
	))
}

// RemoteRecheck is how often disabled remote accessors are retried.
type RemoteRecheck time.Duration

func (Module) RemoteRecheck(
	loader configs.Loader,
) RemoteRecheck {
	return RemoteRecheck(vars.FirstNonZero(
		milliseconds(configs.First[int](loader, "remote_recheck_ms")),
		30*time.Second,
	))
}

type RemoteListen string

var remoteListenFlag = cmds.Var[string]("-listen")

func (Module) RemoteListen(
	loader configs.Loader,
) RemoteListen {
	return RemoteListen(vars.FirstNonZero(
		*remoteListenFlag,
		configs.First[string](loader, "remote_listen"),
	))
}

// ProgramPath is the ladder script loaded at startup.
type ProgramPath string

var programPathFlag = cmds.Var[string]("-program")

func (Module) ProgramPath(
	loader configs.Loader,
) ProgramPath {
	return ProgramPath(vars.FirstNonZero(
		*programPathFlag,
		configs.First[string](loader, "program_path"),
		"ladder.plc",
	))
}

// ProbePaths are starlark scripts run against the program after it is
// loaded. Every config file may name one; command-line probes run first.
type ProbePaths []string

var probeFlag = cmds.Collect[string]("probe")

func (Module) ProbePaths(
	loader configs.Loader,
) (ret ProbePaths) {
	ret = append(ret, *probeFlag...)
	for path := range configs.All[string](loader, "probe") {
		if path != "" {
			ret = append(ret, path)
		}
	}
	return
}

func milliseconds(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
