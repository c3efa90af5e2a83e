package scripts

import (
	"github.com/reusee/ladder/plcs"
)

// Load compiles src into program, replacing its contents. Declarations are
// processed before any rung, so rungs may name objects declared further
// down. On error program is left empty.
func Load(program *plcs.Program, src string) (err error) {
	program.Reset()
	defer func() {
		if err != nil {
			program.Reset()
		}
	}()

	p := &parser{
		program: program,
	}

	lines := normalize(src)
	statements := make([]statement, len(lines))
	for i, line := range lines {
		st, err := parseStatement(line.Text)
		if err != nil {
			return lineError(line.Num, line.Text, err)
		}
		statements[i] = st
		if st.Decl != nil {
			if err := p.declare(line, st.DeclName, *st.Decl); err != nil {
				return err
			}
		}
	}

	if err := p.bindMath(); err != nil {
		return err
	}

	for i, st := range statements {
		if st.Expr == "" {
			continue
		}
		if _, err := p.rung(lines[i], st); err != nil {
			return err
		}
	}

	return nil
}

func (p *parser) rung(line sourceLine, st statement) (*Nest, error) {
	b := &rungBuilder{
		program: p.program,
		line:    line,
		index:   p.program.NextRungIndex(),
	}
	root, err := b.group(st.Expr, 0)
	if err != nil {
		return nil, err
	}
	for _, target := range st.Targets {
		h, err := b.operand(target, true)
		if err != nil {
			return nil, err
		}
		root.Assigns = append(root.Assigns, h)
		for _, from := range root.Last {
			p.program.Wrapper(from).AddNext(b.index, h)
		}
	}
	if err := p.program.AddRung(&plcs.Rung{
		Line:     line.Num,
		Source:   line.Text,
		Wrappers: b.wrappers,
		Initial:  root.First,
	}); err != nil {
		return nil, lineError(line.Num, line.Text, err)
	}
	return root, nil
}
