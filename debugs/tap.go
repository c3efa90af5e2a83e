package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/plcs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// Tap opens an interactive starlark prompt with the program builtins and
// extra globals.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	runner *plcs.Runner,
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := builtins(ctx, runner)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(fileOptions, thread, mappings)
	}
}
