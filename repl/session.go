// Package repl is an interactive shell for trying expressions and directive
// markup against a scratch context.
package repl

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/vcrobe/nojs-html/expr"
	"github.com/vcrobe/nojs-html/markup"
	"github.com/vcrobe/nojs-html/vdom"
	"golang.org/x/net/html"
)

// Options configure the markup renderer of a Session.
type Options struct {
	ReplaceAllTokens      bool
	RawTemplateEvaluation bool
	Dev                   bool
}

// Session holds the variables defined so far. Expressions and markup are
// evaluated against them.
type Session struct {
	vars     map[string]any
	eval     *expr.Evaluator
	renderer *markup.Renderer
}

// NewSession returns a session whose context starts as a copy of vars.
func NewSession(vars map[string]any, opts Options) (*Session, error) {
	s := &Session{vars: maps.Clone(vars)}
	if s.vars == nil {
		s.vars = map[string]any{}
	}
	s.eval = expr.New(s.vars)

	r, err := markup.New(markup.Options{
		NodeFactory:           vdom.CreateElement,
		EvaluationContext:     s.vars,
		RawTemplateEvaluation: opts.RawTemplateEvaluation,
		ReplaceAllTokens:      opts.ReplaceAllTokens,
		DevMode:               opts.Dev,
	})
	if err != nil {
		return nil, err
	}
	s.renderer = r
	return s, nil
}

var letPattern = regexp.MustCompile(`^:let\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+)$`)

// Exec runs one complete input and returns what to print. Input starting
// with "<" is rendered as markup, ":" starts a command and anything else is
// an expression.
func (s *Session) Exec(input string) (string, error) {
	input = strings.TrimSpace(input)

	switch {
	case input == "":
		return "", nil

	case strings.HasPrefix(input, ":let"):
		m := letPattern.FindStringSubmatch(input)
		if m == nil {
			return "", fmt.Errorf("usage: :let name = expression")
		}
		v, err := s.eval.Eval(m[2])
		if err != nil {
			return "", err
		}
		s.vars[m[1]] = v
		return m[1] + " = " + repr(v), nil

	case input == ":vars":
		var b strings.Builder
		for _, name := range slices.Sorted(maps.Keys(s.vars)) {
			fmt.Fprintf(&b, "%s = %s\n", name, repr(s.vars[name]))
		}
		return strings.TrimSuffix(b.String(), "\n"), nil

	case input == ":clear":
		clear(s.vars)
		return "variables cleared", nil

	case input == ":help":
		return helpText, nil

	case strings.HasPrefix(input, ":"):
		return "", fmt.Errorf("unknown command %s (type :help for commands)", input)

	case strings.HasPrefix(input, "<"):
		nodes, err := s.renderer.Render(input)
		if err != nil {
			return "", err
		}
		return vdom.HTMLString(nodes...)
	}

	v, err := s.eval.Eval(input)
	if err != nil {
		return "", err
	}
	return repr(v), nil
}

// Names returns the variable names and builtins, for completion.
func (s *Session) Names() []string {
	names := slices.Sorted(maps.Keys(s.vars))
	return append(names, expr.Builtins()...)
}

const helpText = `Commands:
  :let name = expr   Define a variable
  :vars              Show variables
  :clear             Remove all variables
  :help              Show this help
  exit, quit         Leave the REPL

Input starting with < is rendered as markup, anything else is an expression.`

// repr formats a value as a literal: strings are quoted and lists show
// their elements.
func repr(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = repr(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case func(...any) any:
		return "<func>"
	}
	if v == nil {
		return "nil"
	}
	return expr.FormatValue(v)
}

// voidElements never take an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// needsMoreInput reports whether input is an unfinished markup element or
// an expression with unclosed brackets or quotes.
func needsMoreInput(input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "<") {
		return !strings.HasSuffix(trimmed, ">") || openElements(trimmed) > 0
	}

	depth := 0
	var quote byte
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		}
	}
	return depth > 0 || quote != 0
}

// openElements counts the elements of markup still waiting for an end tag.
func openElements(markup string) int {
	z := html.NewTokenizer(strings.NewReader(markup))
	depth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return depth
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				depth++
			}
		case html.EndTagToken:
			depth--
		}
	}
}
