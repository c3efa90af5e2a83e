package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/reusee/ladder/cells"
	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/plcs"
	"github.com/reusee/ladder/scripts"
)

var errQuit = errors.New("quit")

const consoleHelp = `get REF          print a value
set REF VALUE    write a value
reset ID         clear a timer or counter
status           print every object
scan [N]         run N scans now
load PATH        replace the program
quit`

// console reads operator commands until EOF or quit.
func console(
	ctx context.Context,
	runner *plcs.Runner,
	compileFile scripts.CompileFile,
	logger logs.Logger,
) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := ""
	if dir, err := os.UserConfigDir(); err == nil {
		historyPath = filepath.Join(dir, "ladder-console-history")
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if historyPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
			logger.Warn("create history dir error", "err", err)
			return
		}
		f, err := os.Create(historyPath)
		if err != nil {
			logger.Warn("create history file error", "err", err)
			return
		}
		line.WriteHistory(f)
		f.Close()
	}()

	for {
		input, err := line.Prompt("plc> ")
		if err != nil {
			switch err {
			case io.EOF, liner.ErrPromptAborted:
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		err = consoleCommand(ctx, os.Stdout, runner, compileFile, strings.Fields(input))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(os.Stdout, "error: %v\n", err)
		}
	}
}

func consoleCommand(
	ctx context.Context,
	w io.Writer,
	runner *plcs.Runner,
	compileFile scripts.CompileFile,
	fields []string,
) error {
	arg := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	switch strings.ToLower(fields[0]) {

	case "get":
		return runner.Do(ctx, func(p *plcs.Program) error {
			c, err := p.Resolve(arg(1))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "%s = %s (%s)\n", strings.ToUpper(arg(1)), c.String(), c.Kind())
			return err
		})

	case "set":
		if len(fields) < 3 {
			return fmt.Errorf("usage: set REF VALUE")
		}
		return runner.Do(ctx, func(p *plcs.Program) error {
			return p.Set(arg(1), strings.Join(fields[2:], " "))
		})

	case "reset":
		return runner.Do(ctx, func(p *plcs.Program) error {
			return p.ResetObject(arg(1))
		})

	case "status":
		return writeStatus(ctx, w, runner)

	case "scan":
		n := 1
		if s := arg(1); s != "" {
			var err error
			n, err = strconv.Atoi(s)
			if err != nil {
				return err
			}
		}
		for range n {
			if err := runner.Step(ctx); err != nil {
				return err
			}
		}
		return nil

	case "load":
		return runner.Do(ctx, func(p *plcs.Program) error {
			return compileFile(ctx, p, arg(1))
		})

	case "kinds":
		for k := cells.KindBool; k.Valid(); k++ {
			fmt.Fprintln(w, k)
		}
		return nil

	case "help", "?":
		_, err := fmt.Fprintln(w, consoleHelp)
		return err

	case "quit", "exit":
		return errQuit

	}

	return fmt.Errorf("unknown command: %s", fields[0])
}
