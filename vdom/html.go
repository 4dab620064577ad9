package vdom

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/vcrobe/nojs-html/events"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML serializes nodes back to HTML. Callables are dropped, booleans
// become boolean attributes and structured styles are flattened. Components
// that were not expanded by a host are written as a marker comment followed
// by their children.
func RenderHTML(w io.Writer, nodes ...*VNode) error {
	for _, n := range nodes {
		hn, err := toHTML(n)
		if err != nil {
			return err
		}
		for _, c := range hn {
			if err := html.Render(w, c); err != nil {
				return fmt.Errorf("failed to render <%s>: %w", n.Tag, err)
			}
		}
	}
	return nil
}

// HTMLString is RenderHTML into a string.
func HTMLString(nodes ...*VNode) (string, error) {
	var b strings.Builder
	if err := RenderHTML(&b, nodes...); err != nil {
		return "", err
	}
	return b.String(), nil
}

func toHTML(n *VNode) ([]*html.Node, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case FragmentNode, ComponentNode:
		var out []*html.Node
		if n.Kind == ComponentNode {
			out = append(out, &html.Node{Type: html.CommentNode, Data: fmt.Sprintf("component:%T", n.Component)})
		}
		for _, c := range n.Children {
			hn, err := toHTML(c)
			if err != nil {
				return nil, err
			}
			out = append(out, hn...)
		}
		return out, nil
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
		Attr:     toAttributes(n.Props),
	}

	if n.Kind == LeafNode {
		if n.Content != "" {
			inner, err := html.ParseFragment(strings.NewReader(n.Content), el)
			if err != nil {
				return nil, fmt.Errorf("failed to parse content of <%s>: %w", n.Tag, err)
			}
			for _, c := range inner {
				el.AppendChild(c)
			}
		}
		return []*html.Node{el}, nil
	}

	for _, c := range n.Children {
		hn, err := toHTML(c)
		if err != nil {
			return nil, err
		}
		for _, h := range hn {
			el.AppendChild(h)
		}
	}
	return []*html.Node{el}, nil
}

func toAttributes(props map[string]any) []html.Attribute {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var attrs []html.Attribute
	for _, k := range keys {
		v := props[k]
		if v == nil || reflect.TypeOf(v).Kind() == reflect.Func {
			continue
		}

		name := events.AttributeName(k)
		switch val := v.(type) {
		case bool:
			if val {
				attrs = append(attrs, html.Attribute{Key: name})
			}
		case map[string]string:
			attrs = append(attrs, html.Attribute{Key: name, Val: styleString(val)})
		case RawHTML:
			// Only meaningful to a node factory; never an attribute.
		default:
			attrs = append(attrs, html.Attribute{Key: name, Val: fmt.Sprint(val)})
		}
	}
	return attrs
}

func styleString(style map[string]string) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+style[k])
	}
	return strings.Join(parts, "; ")
}
