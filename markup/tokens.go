package markup

import (
	"slices"
	"strings"
)

type binding struct {
	name  string
	value string
}

// tokenScope is the set of loop tokens visible to an element. It is a value:
// with returns a new scope and never alters the receiver, so a loop can not
// leak its tokens into siblings or into another render.
type tokenScope struct {
	bindings []binding
}

func (s tokenScope) with(name, value string) tokenScope {
	return tokenScope{bindings: append(slices.Clip(s.bindings), binding{name, value})}
}

// lookup returns the innermost value bound to name.
func (s tokenScope) lookup(name string) (string, bool) {
	for i := len(s.bindings) - 1; i >= 0; i-- {
		if s.bindings[i].name == name {
			return s.bindings[i].value, true
		}
	}
	return "", false
}

// substitute replaces {name} with the value of each bound token. Tokens are
// applied in binding order, outermost first; a shadowed name is applied once
// with its innermost value. Only the first occurrence of each token is
// replaced unless all is set.
func (s tokenScope) substitute(text string, all bool) string {
	if len(s.bindings) == 0 || !strings.Contains(text, "{") {
		return text
	}

	n := 1
	if all {
		n = -1
	}

	seen := make(map[string]bool, len(s.bindings))
	for _, b := range s.bindings {
		if seen[b.name] {
			continue
		}
		seen[b.name] = true

		value, _ := s.lookup(b.name)
		text = strings.Replace(text, "{"+b.name+"}", value, n)
	}
	return text
}
