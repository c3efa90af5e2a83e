package scripts

import (
	"strings"
	"unicode"
)

type sourceLine struct {
	Num  int
	Text string
}

// normalize uppercases, drops comments and whitespace, and skips lines too
// short to hold a statement.
func normalize(src string) []sourceLine {
	var ret []sourceLine
	for i, line := range strings.Split(src, "\n") {
		if idx := strings.IndexByte(line, ';'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return unicode.ToUpper(r)
		}, line)
		if len(line) < 2 {
			continue
		}
		ret = append(ret, sourceLine{
			Num:  i + 1,
			Text: line,
		})
	}
	return ret
}

// splitTop splits s on sep outside of parentheses and brackets.
func splitTop(s string, sep byte) ([]string, error) {
	var ret []string
	depth := 0
	inAccessor := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case inAccessor:
			if c == ']' {
				inAccessor = false
			}
		case c == '[':
			inAccessor = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, ErrParserFailed
			}
		case c == sep && depth == 0:
			ret = append(ret, s[start:i])
			start = i + 1
		}
	}
	if depth != 0 || inAccessor {
		return nil, ErrParserFailed
	}
	ret = append(ret, s[start:])
	return ret, nil
}

func isNameChar(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '_'
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}
	return true
}

type call struct {
	Tag  string
	Args []string
}

// parseCall parses TAG(ARG,...). ok is false when s does not have that shape.
func parseCall(s string) (ret call, ok bool, err error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") || !isName(s[:open]) {
		return ret, false, nil
	}
	inner := s[open+1 : len(s)-1]
	args, err := splitTop(inner, ',')
	if err != nil {
		return ret, true, err
	}
	ret.Tag = s[:open]
	if inner != "" {
		ret.Args = args
	}
	return ret, true, nil
}
