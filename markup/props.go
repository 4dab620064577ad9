package markup

import (
	"golang.org/x/net/html"
)

// props resolves the attributes of n into node properties. Directive
// attributes are skipped, names go through the attribute map, style is
// parsed into a map, and every other value is token-substituted and then
// evaluated when it is a whole {expression}.
func (r *Renderer) props(n *html.Node, scope tokenScope) (map[string]any, error) {
	loopForm := hasLoopForm(n)
	props := make(map[string]any, len(n.Attr))

	for _, a := range n.Attr {
		if a.Namespace != "" || isDirectiveAttribute(a.Key, loopForm) {
			continue
		}

		name := r.propName(a.Key)
		if name == "style" {
			props[name] = parseStyle(a.Val)
			continue
		}

		value := scope.substitute(a.Val, r.replaceAll)
		v, err := r.eval.Evaluate(value, value)
		if err != nil {
			return nil, evaluationFailed(openingTag(n), value, err)
		}
		props[name] = v
	}
	return props, nil
}

func (r *Renderer) propName(attr string) string {
	if p, ok := r.propNames[attr]; ok {
		return p
	}
	return attr
}
