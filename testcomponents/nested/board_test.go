//go:build !wasm

package nested

import (
	"testing"

	"github.com/vcrobe/nojs-html/testcomponents"
	"github.com/vcrobe/nojs-html/vdom"
)

func badgeLabels(t *testing.T, root *vdom.VNode) []string {
	t.Helper()
	if root.Tag != "section" {
		t.Fatalf("Expected root tag 'section', got '%s'", root.Tag)
	}
	var labels []string
	for _, child := range root.Children[1:] {
		if child.Tag != "span" || child.Props["className"] != "badge" {
			t.Errorf("Expected a badge span, got %+v", child)
		}
		labels = append(labels, child.Content)
	}
	return labels
}

// TestBoard_MountsRegisteredComponents verifies that registered tags are
// expanded into their rendered child components.
func TestBoard_MountsRegisteredComponents(t *testing.T) {
	// Arrange
	board := NewBoard("go", "wasm")
	renderer := testcomponents.NewTestRenderer(board)

	// Act
	vnode := renderer.RenderRoot()

	// Assert
	if len(vnode.Children) != 3 {
		t.Fatalf("Expected heading plus 2 badges, got %d children", len(vnode.Children))
	}
	labels := badgeLabels(t, vnode)
	if labels[0] != "go" || labels[1] != "wasm" {
		t.Errorf("Expected badges [go wasm], got %v", labels)
	}
	if board.Inits != 2 {
		t.Errorf("Expected 2 OnInit calls, got %d", board.Inits)
	}
	if renderer.LiveInstances() != 2 {
		t.Errorf("Expected 2 live instances, got %d", renderer.LiveInstances())
	}
}

// TestBoard_ReusesInstancesAcrossRenders verifies that a badge at the same
// position keeps its instance and receives the new props.
func TestBoard_ReusesInstancesAcrossRenders(t *testing.T) {
	// Arrange
	board := NewBoard("go", "wasm")
	renderer := testcomponents.NewTestRenderer(board)
	renderer.RenderRoot()

	// Act
	board.SetLabels("go", "signals")

	// Assert
	labels := badgeLabels(t, renderer.GetCurrentVDOM())
	if len(labels) != 2 || labels[1] != "signals" {
		t.Errorf("Expected badges [go signals], got %v", labels)
	}
	if board.Inits != 2 {
		t.Errorf("Expected instances to be reused, got %d OnInit calls", board.Inits)
	}
	if board.Destroyed != 0 {
		t.Errorf("Expected no destroyed instances, got %d", board.Destroyed)
	}
}

// TestBoard_DestroysRemovedInstances verifies that badges no longer
// rendered receive OnDestroy and leave the instance table.
func TestBoard_DestroysRemovedInstances(t *testing.T) {
	// Arrange
	board := NewBoard("a", "b", "c")
	renderer := testcomponents.NewTestRenderer(board)
	renderer.RenderRoot()

	// Act
	board.SetLabels("a")

	// Assert
	if board.Destroyed != 2 {
		t.Errorf("Expected 2 OnDestroy calls, got %d", board.Destroyed)
	}
	if renderer.LiveInstances() != 1 {
		t.Errorf("Expected 1 live instance, got %d", renderer.LiveInstances())
	}

	// Act: render the removed badges again
	board.SetLabels("a", "b")

	// Assert: a fresh instance is initialized
	if board.Inits != 4 {
		t.Errorf("Expected 4 OnInit calls, got %d", board.Inits)
	}
}
