//go:build !wasm

package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type widget struct{}

func TestCreateElement_MovesInnerHTMLIntoContent(t *testing.T) {
	// Arrange
	props := map[string]any{"title": "t", InnerHTMLProp: RawHTML("<b>hi</b>")}

	// Act
	n := CreateElement("p", props, nil)

	// Assert
	want := &VNode{Kind: LeafNode, Tag: "p", Props: map[string]any{"title": "t"}, Content: "<b>hi</b>"}
	if diff := cmp.Diff(want, n); diff != "" {
		t.Errorf("Mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateElement_StructuralAndComponent(t *testing.T) {
	child := CreateElement("li", map[string]any{}, nil)

	list := CreateElement("ul", nil, []*VNode{child})
	if list.Kind != StructuralNode || len(list.Children) != 1 {
		t.Errorf("Expected structural <ul> with one child, got %s with %d", list.Kind, len(list.Children))
	}

	w := &widget{}
	comp := CreateElement(w, map[string]any{"x": 1}, nil)
	if comp.Kind != ComponentNode || comp.Component != w || comp.Tag != "" {
		t.Errorf("Expected component node for a non-string type, got %+v", comp)
	}
}

func TestCompactAndFragment(t *testing.T) {
	a := Paragraph("a", nil)
	b := Paragraph("b", nil)
	in := []*VNode{nil, a, nil, b}

	out := Compact(in)

	if len(out) != 2 || out[0] != a || out[1] != b {
		t.Errorf("Expected nil entries removed in order, got %v", out)
	}
	if in[0] != nil {
		t.Errorf("Expected input to be left untouched")
	}
	if f := Fragment(in...); f.Kind != FragmentNode || len(f.Children) != 2 {
		t.Errorf("Expected fragment with 2 children, got %+v", f)
	}
}

func TestVNode_HandlerAndStyle(t *testing.T) {
	called := false
	n := Div(map[string]any{
		"onClick": func() { called = true },
		"style":   map[string]string{"color": "red"},
	})

	h, ok := n.Handler("onClick")
	if !ok {
		t.Fatalf("Expected onClick handler")
	}
	h()
	if !called {
		t.Errorf("Expected handler to run")
	}
	if n.Style()["color"] != "red" {
		t.Errorf("Expected style color red, got %v", n.Style())
	}

	var nilNode *VNode
	if _, ok := nilNode.Handler("onClick"); ok {
		t.Errorf("Expected no handler on a nil node")
	}
}

func TestKind_String(t *testing.T) {
	if got := ComponentNode.String(); got != "component" {
		t.Errorf("Expected 'component', got '%s'", got)
	}
	if got := Kind(42).String(); got != "unknown" {
		t.Errorf("Expected 'unknown', got '%s'", got)
	}
}
