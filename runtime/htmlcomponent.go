package runtime

import (
	"fmt"
	"html"
	"strconv"

	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/markup"
	"github.com/vcrobe/nojs-html/vdom"
)

// HTMLRenderer is implemented by components whose view is directive markup.
type HTMLRenderer interface {
	Component
	RenderHTML() string
}

// HTMLComponent is embedded by components that describe their view as
// markup. The embedding component implements RenderHTML and forwards its
// Render to RenderMarkup:
//
//	type Greeting struct {
//	    runtime.HTMLComponent
//	    Name string
//	}
//
//	func NewGreeting(name string) *Greeting {
//	    g := &Greeting{Name: name}
//	    g.Interpolate = true
//	    return g
//	}
//
//	func (g *Greeting) RenderHTML() string { return `<p>Hello ${Name}</p>` }
//
//	func (g *Greeting) Render(r runtime.Renderer) *vdom.VNode {
//	    return g.RenderMarkup(g, r)
//	}
type HTMLComponent struct {
	ComponentBase

	// Components maps tag names to child components. ComponentFunc values
	// are mounted through the renderer; anything else is left to the node
	// factory.
	Components map[string]any

	// Interpolate evaluates ${expr} across the whole markup before parsing.
	Interpolate bool

	renderer *markup.Renderer
}

// RenderMarkup renders self.RenderHTML() with self as the evaluation
// context. A single top-level node is returned as is, several are grouped
// in a fragment. A template error is logged and rendered in place of the
// view.
func (h *HTMLComponent) RenderMarkup(self HTMLRenderer, r Renderer) *vdom.VNode {
	if h.renderer == nil {
		mr, err := markup.New(markup.Options{
			NodeFactory:           vdom.CreateElement,
			EvaluationContext:     self,
			ComponentRegistry:     h.Components,
			RawTemplateEvaluation: h.Interpolate,
		})
		if err != nil {
			return renderError(self, err)
		}
		h.renderer = mr
	}

	nodes, err := h.renderer.Render(self.RenderHTML())
	if err != nil {
		return renderError(self, err)
	}

	nodes = Expand(r, fmt.Sprintf("%T@%p", self, self), nodes)
	if compact := vdom.Compact(nodes); len(compact) == 1 {
		return compact[0]
	}
	return vdom.Fragment(nodes...)
}

func renderError(c Component, err error) *vdom.VNode {
	console.Error(fmt.Sprintf("%T: %v", c, err))
	return vdom.Paragraph(html.EscapeString(err.Error()), map[string]any{"className": "nojs-error"})
}

// Expand mounts the component nodes whose Component is a ComponentFunc:
// each is created from the node's props and children and rendered through
// r.RenderChild under a key derived from prefix and its position. Other
// nodes are returned with their children expanded. nil entries are kept.
func Expand(r Renderer, prefix string, nodes []*vdom.VNode) []*vdom.VNode {
	out := make([]*vdom.VNode, len(nodes))
	for i, n := range nodes {
		out[i] = expandNode(r, prefix+"/"+strconv.Itoa(i), n)
	}
	return out
}

func expandNode(r Renderer, key string, n *vdom.VNode) *vdom.VNode {
	if n == nil {
		return nil
	}

	children := Expand(r, key, n.Children)

	if n.Kind == vdom.ComponentNode {
		switch create := n.Component.(type) {
		case ComponentFunc:
			return r.RenderChild(key, create(n.Props, children))
		case func(map[string]any, []*vdom.VNode) Component:
			return r.RenderChild(key, create(n.Props, children))
		}
	}

	expanded := *n
	expanded.Children = children
	if n.Children == nil {
		expanded.Children = nil
	}
	return &expanded
}
