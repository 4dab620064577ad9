package markup

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// parseStyle turns an inline declaration list into a property map keyed by
// lower-case property name. Declarations the parser rejects are dropped, the
// way a browser drops them.
func parseStyle(decls string) map[string]string {
	style := map[string]string{}

	p := css.NewParser(parse.NewInputString(decls), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if !p.HasParseError() {
				return style
			}
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			var value strings.Builder
			for _, v := range p.Values() {
				value.Write(v.Data)
			}
			style[string(data)] = strings.TrimSpace(value.String())
		}
	}
}
