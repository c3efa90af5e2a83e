package debugs

import (
	"context"
	"fmt"

	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/plcs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// builtins exposes the running program to starlark. Every call waits for
// the current scan to finish.
func builtins(ctx context.Context, runner *plcs.Runner) starlark.StringDict {
	return starlark.StringDict{

		"get": starlark.NewBuiltin("get", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var ref string
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "ref", &ref); err != nil {
				return nil, err
			}
			var ret starlark.Value
			err := runner.Do(ctx, func(p *plcs.Program) error {
				c, err := p.Resolve(ref)
				if err != nil {
					return err
				}
				ret = cellValue(c)
				return nil
			})
			return ret, err
		}),

		"set": starlark.NewBuiltin("set", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var ref string
			var value starlark.Value
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "ref", &ref, "value", &value); err != nil {
				return nil, err
			}
			return starlark.None, runner.Do(ctx, func(p *plcs.Program) error {
				return p.Set(ref, fromStarlarkValue(value))
			})
		}),

		"reset": starlark.NewBuiltin("reset", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var id string
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "id", &id); err != nil {
				return nil, err
			}
			return starlark.None, runner.Do(ctx, func(p *plcs.Program) error {
				return p.ResetObject(id)
			})
		}),

		"scan": starlark.NewBuiltin("scan", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			n := 1
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "n?", &n); err != nil {
				return nil, err
			}
			for range n {
				if err := runner.Step(ctx); err != nil {
					return nil, err
				}
			}
			return starlark.None, nil
		}),

		"status": starlark.NewBuiltin("status", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
				return nil, err
			}
			status, err := runner.Status(ctx)
			if err != nil {
				return nil, err
			}
			return toStarlarkValue(status), nil
		}),
	}
}

// Eval runs a starlark probe script against the program and returns its
// globals.
type Eval func(ctx context.Context, name string, src string) (starlark.StringDict, error)

func (Module) Eval(
	runner *plcs.Runner,
	logger logs.Logger,
) Eval {
	return func(ctx context.Context, name string, src string) (starlark.StringDict, error) {
		thread := &starlark.Thread{
			Name: name,
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, "probe", "name", name, "msg", msg)
			},
		}
		globals, err := starlark.ExecFileOptions(fileOptions, thread, name, src, builtins(ctx, runner))
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", name, err)
		}
		return globals, nil
	}
}
