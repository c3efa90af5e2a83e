package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/reusee/dscope"
	"github.com/reusee/ladder/cmds"
	"github.com/reusee/ladder/configs"
	"github.com/reusee/ladder/debugs"
	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/modes"
	"github.com/reusee/ladder/plcconfigs"
	"github.com/reusee/ladder/plcs"
	"github.com/reusee/ladder/remotes"
	"github.com/reusee/ladder/scripts"
)

var (
	checkOnly  = cmds.Switch("check")
	withStatus = cmds.Switch("status")
	useConsole = cmds.Switch("console")
	useTap     = cmds.Switch("tap")
	simulate   = cmds.Switch("-simulate")
	scanLimit  = cmds.Var[int]("-scans")
)

func main() {
	cmds.Execute(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var mode any = modes.ForProduction()
	if *simulate {
		mode = modes.ForSimulation()
	}
	scope := dscope.New(
		new(Module),
		mode,
	)

	scope.Call(func(
		loader configs.Loader,
	) {
		var err error
		scope, err = configs.CueFork(scope, loader)
		ce(err)
	})

	scope.Call(func(
		logger logs.Logger,
		_ plcconfigs.Verbosity,
		programPath plcconfigs.ProgramPath,
		listen plcconfigs.RemoteListen,
		probes plcconfigs.ProbePaths,
		program *plcs.Program,
		runner *plcs.Runner,
		compileFile scripts.CompileFile,
		eval debugs.Eval,
		tap debugs.Tap,
	) {

		ce(compileFile(ctx, program, string(programPath)))
		if *checkOnly {
			if *withStatus {
				ce(writeStatus(ctx, os.Stdout, runner))
			}
			return
		}

		for _, path := range probes {
			content, err := os.ReadFile(path)
			ce(err)
			_, err = eval(ctx, path, string(content))
			ce(err)
		}

		if listen != "" {
			ln, err := net.Listen("tcp", string(listen))
			ce(err)
			logger.Info("remote peer listening", "addr", ln.Addr().String())
			go func() {
				if err := remotes.Serve(ctx, ln, runner); err != nil {
					logger.Error("remote peer", "error", err)
				}
			}()
		}

		switch {

		case *useConsole:
			go runner.Run(ctx, 0)
			ce(console(ctx, runner, compileFile, logger))

		case *useTap:
			go runner.Run(ctx, 0)
			tap(ctx, "ladder", map[string]any{
				"program_path": string(programPath),
			})

		default:
			err := runner.Run(ctx, uint64(max(*scanLimit, 0)))
			if err != nil && !errors.Is(err, context.Canceled) {
				ce(err)
			}

		}

		if *withStatus {
			ce(writeStatus(context.Background(), os.Stdout, runner))
		}
	})
}
