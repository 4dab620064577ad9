package markup

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/expr"
	"github.com/vcrobe/nojs-html/vdom"
	"golang.org/x/net/html"
)

// doTag is the non-rendering element whose children take its place.
const doTag = "do"

const (
	defaultIndexName = "i"
	defaultValueName = "val"
)

// loopForms are the attributes that make an element iterate.
var loopForms = []string{"loop", "on", "to"}

// loopAttributes are consumed by iteration and never become props on an
// iterating element.
var loopAttributes = map[string]bool{
	"loop": true, "on": true, "to": true, "from": true,
	"step": true, "index": true, "value": true,
}

type directiveKind int

const (
	noDirective directiveKind = iota
	ifDirective
	loopDirective
)

// directive is the control flow classification of one element.
type directive struct {
	kind directiveKind

	// if
	render bool

	// loop
	from, to, step int
	index, value   string
	collection     reflect.Value // invalid for count-based loops
}

// hasLoopForm reports whether the element carries loop, on or to.
func hasLoopForm(n *html.Node) bool {
	for _, a := range n.Attr {
		for _, f := range loopForms {
			if a.Key == f {
				return true
			}
		}
	}
	return false
}

// isDirectiveAttribute reports whether the attribute is consumed by the
// interpreter rather than forwarded as a prop.
func isDirectiveAttribute(name string, loopForm bool) bool {
	return name == "if" || (loopForm && loopAttributes[name])
}

func attribute(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// directive classifies n. It runs before any of n's children are visited.
func (r *Renderer) directive(n *html.Node, scope tokenScope) (directive, error) {
	if cond, ok := attribute(n, "if"); ok {
		return r.ifDirective(n, cond)
	}
	if hasLoopForm(n) {
		return r.loopDirective(n, scope)
	}

	if n.Data == doTag {
		for _, name := range []string{"from", "step", "index", "value"} {
			if _, ok := attribute(n, name); ok {
				return directive{}, malformed(openingTag(n),
					"%q needs an if, loop, on or to attribute alongside it", name)
			}
		}
	}
	return directive{kind: noDirective}, nil
}

func (r *Renderer) ifDirective(n *html.Node, cond string) (directive, error) {
	switch cond {
	case "true":
		return directive{kind: ifDirective, render: true}, nil
	case "false":
		return directive{kind: ifDirective, render: false}, nil
	}

	if !expr.IsDelimited(cond) {
		return directive{}, malformed(openingTag(n),
			`if must be "true", "false" or an {expression}, got %q`, cond)
	}
	v, err := r.eval.Evaluate(cond, nil)
	if err != nil {
		return directive{}, evaluationFailed(openingTag(n), cond, err)
	}
	return directive{kind: ifDirective, render: expr.Truthy(v)}, nil
}

func (r *Renderer) loopDirective(n *html.Node, scope tokenScope) (directive, error) {
	d := directive{
		kind:  loopDirective,
		step:  1,
		index: defaultIndexName,
		value: defaultValueName,
	}
	markup := openingTag(n)

	// loop is the index-based form and always steps by one; on honours step.
	source, indexBased := attribute(n, "loop")
	hasSource := indexBased
	if !hasSource {
		source, hasSource = attribute(n, "on")
	}

	if hasSource {
		if !expr.IsDelimited(source) {
			return d, malformed(markup, "collection must be an {expression}, got %q", source)
		}
		v, err := r.eval.Evaluate(source, nil)
		if err != nil {
			return d, evaluationFailed(markup, source, err)
		}
		if v == nil {
			if r.dev {
				console.Warn(fmt.Sprintf("markup: %s iterates over nil, rendering nothing", source))
			}
			v = []any{}
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return d, malformed(markup, "%s evaluated to %T, not a list", source, v)
		}
		d.collection = rv
		d.to = rv.Len()
	}

	var err error
	if raw, ok := attribute(n, "from"); ok {
		if d.from, err = r.bound(markup, "from", raw, scope); err != nil {
			return d, err
		}
	}
	if raw, ok := attribute(n, "to"); ok {
		if d.to, err = r.bound(markup, "to", raw, scope); err != nil {
			return d, err
		}
		if d.collection.IsValid() {
			d.to = min(d.to, d.collection.Len())
		}
	}
	if raw, ok := attribute(n, "step"); ok && !indexBased {
		if d.step, err = r.bound(markup, "step", raw, scope); err != nil {
			return d, err
		}
		if d.step <= 0 {
			return d, malformed(markup, "step must be positive, got %d", d.step)
		}
	}
	if d.collection.IsValid() && d.from < 0 {
		return d, malformed(markup, "from must not be negative when iterating a list, got %d", d.from)
	}

	if name, ok := attribute(n, "index"); ok && name != "" {
		d.index = name
	}
	if name, ok := attribute(n, "value"); ok && name != "" {
		d.value = name
	}
	return d, nil
}

// bound resolves a from, to or step attribute: an integer literal or an
// {expression} yielding one. Enclosing loop tokens are substituted first, so
// an inner loop can be bounded by an outer index.
func (r *Renderer) bound(markup, name, raw string, scope tokenScope) (int, error) {
	text := strings.TrimSpace(scope.substitute(raw, r.replaceAll))

	if !expr.IsDelimited(text) {
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, malformed(markup, "%s must be an integer, got %q", name, raw)
		}
		return n, nil
	}

	v, err := r.eval.Evaluate(text, nil)
	if err != nil {
		return 0, evaluationFailed(markup, text, err)
	}
	n, ok := expr.ToInt(v)
	if !ok {
		return 0, malformed(markup, "%s must be an integer, %s evaluated to %v", name, text, v)
	}
	return n, nil
}

// interpret renders one element. The result holds a single nil entry for an
// element excluded by if="false", and any number of nodes for a do element.
func (r *Renderer) interpret(n *html.Node, scope tokenScope) ([]*vdom.VNode, error) {
	d, err := r.directive(n, scope)
	if err != nil {
		return nil, err
	}
	transparent := n.Data == doTag

	switch d.kind {
	case ifDirective:
		if !d.render {
			return []*vdom.VNode{nil}, nil
		}

	case loopDirective:
		var results []*vdom.VNode
		for i := d.from; i < d.to; {
			iter := scope.with(d.index, strconv.Itoa(i))
			if d.collection.IsValid() {
				iter = iter.with(d.value, expr.FormatValue(d.collection.Index(i).Interface()))
			}
			children, err := r.interpretChildren(n, iter)
			if err != nil {
				return nil, err
			}
			results = append(results, children...)

			// Stop before i += step would overflow.
			if i > math.MaxInt-d.step {
				break
			}
			i += d.step
		}
		if transparent {
			return results, nil
		}
		node, err := r.build(n, scope, results, false)
		if err != nil {
			return nil, err
		}
		return []*vdom.VNode{node}, nil
	}

	if transparent {
		return r.interpretChildren(n, scope)
	}
	node, err := r.build(n, scope, nil, true)
	if err != nil {
		return nil, err
	}
	return []*vdom.VNode{node}, nil
}

func (r *Renderer) interpretChildren(n *html.Node, scope tokenScope) ([]*vdom.VNode, error) {
	var out []*vdom.VNode
	for _, c := range elementChildren(n) {
		nodes, err := r.interpret(c, scope)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}
