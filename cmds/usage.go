package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stdout)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, p.names, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, canonical map[*Command]string, depth int) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		cmd := commands[name]
		if cmd == nil {
			continue
		}
		if canonical != nil && canonical[cmd] != name {
			// alias
			continue
		}
		label := name
		if len(cmd.Aliases) > 0 {
			label += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "%s%s\t%s\n", indent, label, cmd.Description)
		if len(cmd.Subs) > 0 {
			writeCommands(w, cmd.Subs, nil, depth+1)
		}
	}
}
