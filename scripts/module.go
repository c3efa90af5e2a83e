package scripts

import (
	"context"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/plcs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// Compile loads src into program and reports rejected scripts to the log.
type Compile func(ctx context.Context, program *plcs.Program, src string) error

func (Module) Compile(
	logger logs.Logger,
	newSpan logs.NewSpan,
) Compile {
	return func(ctx context.Context, program *plcs.Program, src string) error {
		ctx, _ = newSpan(ctx, "")
		if err := Load(program, src); err != nil {
			logger.ErrorContext(ctx, "script rejected", "error", err)
			return logs.WrapSpan(ctx, err)
		}
		logger.InfoContext(ctx, "script loaded",
			"objects", len(program.Objects()),
			"rungs", len(program.Rungs()),
		)
		return nil
	}
}

type CompileFile func(ctx context.Context, program *plcs.Program, path string) error

func (Module) CompileFile(
	compile Compile,
) CompileFile {
	return func(ctx context.Context, program *plcs.Program, path string) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read program: %w", err)
		}
		return compile(ctx, program, string(content))
	}
}
