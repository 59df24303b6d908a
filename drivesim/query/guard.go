package query

import (
	"fmt"
	"strings"
)

// Guard prepares a raw query for tokenization: quoted literals are pulled
// out into placeholders so operator characters inside them are never taken
// for grammar operators, and the comparison operators outside literals are
// rewritten as space-delimited tokens. The returned map restores each
// placeholder to its original quoted literal.
func Guard(q string) (string, map[string]string, error) {
	if (strings.Count(q, "'")+strings.Count(q, `"`))%2 != 0 {
		return "", nil, fmt.Errorf("query string contains unbalanced quotes")
	}

	literals := make(map[string]string)
	rs := []rune(q)
	var out strings.Builder

	for i := 0; i < len(rs); {
		ch := rs[i]

		if ch == '\'' || ch == '"' {
			lit, next, ok := scanLiteral(rs, i, ch)
			if !ok {
				return "", nil, fmt.Errorf("query string contains unbalanced quotes")
			}
			ph := fmt.Sprintf("__QUOTE_%d__", len(literals))
			literals[ph] = lit
			out.WriteString(ph)
			i = next
			continue
		}

		switch ch {
		case '!':
			if i+1 < len(rs) && rs[i+1] == '=' {
				out.WriteString(" != ")
				i += 2
				continue
			}
			out.WriteRune(ch)
			i++
		case '<':
			if i+1 < len(rs) && rs[i+1] == '=' {
				out.WriteString(" <= ")
				i += 2
			} else {
				out.WriteString(" < ")
				i++
			}
		case '>':
			if i+1 < len(rs) && rs[i+1] == '=' {
				out.WriteString(" >= ")
				i += 2
			} else {
				out.WriteString(" > ")
				i++
			}
		case '=':
			out.WriteString(" = ")
			i++
		default:
			out.WriteRune(ch)
			i++
		}
	}

	return out.String(), literals, nil
}

// scanLiteral consumes a quoted literal starting at rs[start] (the opening
// quote) and returns the literal including its quotes plus the index just
// past the closing quote. Backslash escapes the next character.
func scanLiteral(rs []rune, start int, quote rune) (string, int, bool) {
	var lit strings.Builder
	lit.WriteRune(quote)
	i := start + 1
	for i < len(rs) {
		if rs[i] == '\\' && i+1 < len(rs) {
			lit.WriteRune(rs[i])
			lit.WriteRune(rs[i+1])
			i += 2
			continue
		}
		lit.WriteRune(rs[i])
		if rs[i] == quote {
			return lit.String(), i + 1, true
		}
		i++
	}
	return "", 0, false
}
