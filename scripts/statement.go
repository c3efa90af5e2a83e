package scripts

// statement is one line split on top level '='. A trailing NAME=TAG(ARGS)
// pair is a declaration; NAME then also serves as the last target.
type statement struct {
	Expr     string
	Targets  []string
	DeclName string
	Decl     *call
}

func parseStatement(text string) (ret statement, err error) {
	segs, err := splitTop(text, '=')
	if err != nil {
		return ret, err
	}
	for _, seg := range segs {
		if seg == "" {
			return ret, ErrParserFailed
		}
	}

	if n := len(segs); n >= 2 && isName(segs[n-2]) {
		c, ok, err := parseCall(segs[n-1])
		if err != nil {
			return ret, err
		}
		if ok {
			ret.DeclName = segs[n-2]
			ret.Decl = &c
			segs = segs[:n-1]
			if len(segs) == 1 {
				// declaration only
				return ret, nil
			}
		}
	}

	ret.Expr = segs[0]
	ret.Targets = segs[1:]
	return ret, nil
}
