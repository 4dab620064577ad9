// Package markup renders directive markup into virtual nodes.
//
// Markup is plain HTML with a few control flow attributes:
//
//	<ul loop="{Items}" value="item"><li>{item}</li></ul>
//	<do if="{LoggedIn}"><p>Welcome back</p></do>
//
// if="true", if="false" or if="{expr}" includes or drops an element.
// loop="{list}" repeats the children of an element once per list entry;
// on="{list}" does the same and also honours from, to and step, while a
// bare to="n" counts without a list. index and value name the loop tokens
// (i and val by default), which are substituted as {name} in the literal
// text and attribute values beneath the loop. The do element renders its
// children in its place without a wrapper.
//
// Attribute values of the form {expr} are evaluated against the evaluation
// context; method values come back bound to it, so onclick="{Save}" yields a
// callable prop. Tag names found in the component registry become component
// nodes.
package markup

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/events"
	"github.com/vcrobe/nojs-html/expr"
	"github.com/vcrobe/nojs-html/vdom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeFactory creates a virtual node. typ is a tag name or a component
// reference taken from the registry.
type NodeFactory func(typ any, props map[string]any, children []*vdom.VNode) *vdom.VNode

// Options configures a Renderer.
type Options struct {
	// NodeFactory creates the nodes. Required; vdom.CreateElement is the
	// default implementation.
	NodeFactory NodeFactory

	// EvaluationContext is the receiver expressions resolve against.
	EvaluationContext any

	// ComponentRegistry maps tag names to component references. Names are
	// matched case-insensitively.
	ComponentRegistry map[string]any

	// RawTemplateEvaluation interpolates ${expr} across the whole markup
	// before it is parsed.
	RawTemplateEvaluation bool

	// ReplaceAllTokens replaces every occurrence of a {token} instead of
	// only the first one.
	ReplaceAllTokens bool

	// AttributeMap adds to or overrides the default attribute to property
	// name table. Keys are matched lower-case.
	AttributeMap map[string]string

	// DevMode logs warnings about suspicious templates.
	DevMode bool
}

// Renderer turns markup into virtual nodes. It holds no per-render state,
// so one Renderer may be used by several goroutines at once.
type Renderer struct {
	factory     NodeFactory
	eval        *expr.Evaluator
	registry    map[string]any
	propNames   map[string]string
	rawTemplate bool
	replaceAll  bool
	dev         bool
}

// New validates opts and returns a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.NodeFactory == nil {
		return nil, &TemplateError{
			Kind: ErrConfiguration,
			Err:  errors.New("a NodeFactory is required"),
		}
	}

	registry := make(map[string]any, len(opts.ComponentRegistry))
	for name, component := range opts.ComponentRegistry {
		registry[registryKey(name)] = component
	}

	propNames := events.DefaultPropNames()
	for attr, prop := range opts.AttributeMap {
		propNames[strings.ToLower(attr)] = prop
	}

	if opts.DevMode {
		for _, name := range ConflictingTagNames(opts.ComponentRegistry) {
			console.Warn(fmt.Sprintf("markup: component %q shares its name with the HTML tag <%s>, which the parser treats specially",
				name, strings.ToLower(name)))
		}
	}

	return &Renderer{
		factory:     opts.NodeFactory,
		eval:        expr.New(opts.EvaluationContext),
		registry:    registry,
		propNames:   propNames,
		rawTemplate: opts.RawTemplateEvaluation,
		replaceAll:  opts.ReplaceAllTokens,
		dev:         opts.DevMode,
	}, nil
}

// Components returns a copy of the registry, keyed by normalized name.
func (r *Renderer) Components() map[string]any {
	return maps.Clone(r.registry)
}

// Render parses src and renders its top-level elements. Elements dropped by
// if="false" leave a nil entry at their position. Text outside elements is
// ignored. The first failure aborts the render and is returned as a
// *TemplateError.
func (r *Renderer) Render(src string) ([]*vdom.VNode, error) {
	if r.rawTemplate {
		interpolated, err := r.eval.Interpolate(src)
		if err != nil {
			return nil, &TemplateError{Kind: ErrExpressionEvaluation, Err: err}
		}
		src = interpolated
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	roots, err := html.ParseFragment(strings.NewReader(expandSelfClosing(src)), body)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	var result []*vdom.VNode
	for _, n := range roots {
		if n.Type != html.ElementNode {
			continue
		}
		nodes, err := r.interpret(n, tokenScope{})
		if err != nil {
			return nil, locate(err, src)
		}
		result = append(result, nodes...)
	}
	return result, nil
}

// locate fills in the source line of a TemplateError.
func locate(err error, src string) error {
	var te *TemplateError
	if !errors.As(err, &te) || te.Line != 0 {
		return err
	}
	if te.Expression != "" {
		te.Line = estimateLineNumber(src, te.Expression)
	}
	if te.Line == 0 && te.Markup != "" {
		te.Line = estimateLineNumber(src, te.Markup)
	}
	if te.Line == 0 && te.Markup != "" {
		tag := te.Markup
		if i := strings.IndexAny(tag, " >"); i > 0 {
			tag = tag[:i]
		}
		te.Line = estimateLineNumber(src, tag)
	}
	return te
}
