package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokOperator
)

type token struct {
	kind  tokenKind
	value string
	pos   int
}

// Longest operators first so that "===" wins over "==" and "=".
var operators = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||",
	"+", "-", "*", "/", "%", "<", ">", "!", "?", ":",
	".", ",", "(", ")", "[", "]",
}

func tokenize(src string) ([]token, error) {
	var tokens []token
	pos := 0

	for pos < len(src) {
		r, size := utf8.DecodeRuneInString(src[pos:])

		switch {
		case unicode.IsSpace(r):
			pos += size

		case r == '_' || r == '$' || unicode.IsLetter(r):
			start := pos
			for pos < len(src) {
				r, size = utf8.DecodeRuneInString(src[pos:])
				if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				pos += size
			}
			tokens = append(tokens, token{kind: tokIdent, value: src[start:pos], pos: start})

		case isDigit(src[pos]) || (src[pos] == '.' && pos+1 < len(src) && isDigit(src[pos+1])):
			start := pos
			seenDot := false
			for pos < len(src) && (isDigit(src[pos]) || (src[pos] == '.' && !seenDot && pos+1 < len(src) && isDigit(src[pos+1]))) {
				if src[pos] == '.' {
					seenDot = true
				}
				pos++
			}
			value := src[start:pos]
			if strings.HasPrefix(value, ".") {
				value = "0" + value
			}
			tokens = append(tokens, token{kind: tokNumber, value: value, pos: start})

		case r == '"' || r == '\'':
			value, n, err := scanString(src, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, value: value, pos: pos})
			pos += n

		default:
			matched := false
			for _, op := range operators {
				if strings.HasPrefix(src[pos:], op) {
					tokens = append(tokens, token{kind: tokOperator, value: op, pos: pos})
					pos += len(op)
					matched = true
					break
				}
			}
			if !matched {
				return nil, newParseError(src, pos, "unexpected character %q", r)
			}
		}
	}

	tokens = append(tokens, token{kind: tokEOF, pos: pos})
	return tokens, nil
}

// scanString reads a quoted string starting at pos and returns its unescaped
// value and the number of bytes consumed, quotes included.
func scanString(src string, pos int) (string, int, error) {
	quote := src[pos]
	var b strings.Builder

	for i := pos + 1; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			i++
			switch src[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(src[i])
			}
		case c == quote:
			return b.String(), i - pos + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, newParseError(src, pos, "unterminated string")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
