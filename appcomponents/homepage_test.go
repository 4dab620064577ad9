//go:build !wasm

package appcomponents

import (
	"testing"

	"github.com/vcrobe/nojs-html/testcomponents"
	"github.com/vcrobe/nojs-html/vdom"
)

func mount(t *testing.T, h *HomePage) *testcomponents.TestRenderer {
	t.Helper()
	r := testcomponents.NewTestRenderer(h)
	h.OnInit()
	r.RenderRoot()
	t.Cleanup(h.OnDestroy)
	return r
}

func child(n *vdom.VNode, tag string, nth int) *vdom.VNode {
	for _, c := range n.Children {
		if c.Tag == tag {
			if nth == 0 {
				return c
			}
			nth--
		}
	}
	return nil
}

func button(n *vdom.VNode, label string) *vdom.VNode {
	for _, c := range n.Children {
		if c.Tag == "button" && c.Content == label {
			return c
		}
	}
	return nil
}

func TestHomePage_InitialRender(t *testing.T) {
	// Arrange
	h := NewHomePage("Todo", Item{Text: "a"}, Item{Text: "b", Done: true})

	// Act
	root := mount(t, h).GetCurrentVDOM()

	// Assert
	if root.Tag != "main" {
		t.Fatalf("Expected root tag 'main', got '%s'", root.Tag)
	}
	if h1 := child(root, "h1", 0); h1 == nil || h1.Content != "Todo" {
		t.Errorf("Expected heading 'Todo', got %+v", h1)
	}

	ul := child(root, "ul", 0)
	if ul == nil || len(ul.Children) != 2 {
		t.Fatalf("Expected a list with 2 items, got %+v", ul)
	}
	if ul.Children[0].Content != "a" || ul.Children[1].Content != "<s>b</s>" {
		t.Errorf("Unexpected item contents: %q, %q", ul.Children[0].Content, ul.Children[1].Content)
	}
	if ul.Children[1].Props["className"] != "item-1" {
		t.Errorf("Expected className 'item-1', got %v", ul.Children[1].Props["className"])
	}

	status := child(root, "div", 0)
	if status == nil || status.Props["className"] != "status" {
		t.Fatalf("Expected the status panel, got %+v", status)
	}
	if p := child(status, "p", 0); p == nil || p.Content != "1 of 2 done" {
		t.Errorf("Expected '1 of 2 done', got %+v", p)
	}
	if next := button(root, "Complete next"); next == nil {
		t.Errorf("Expected the 'Complete next' button while items are open")
	}
}

func TestHomePage_SignalChangesReRender(t *testing.T) {
	// Arrange
	h := NewHomePage("Todo", Item{Text: "a"})
	r := mount(t, h)

	// Act: click "Complete next"
	click, ok := button(r.GetCurrentVDOM(), "Complete next").Handler("onClick")
	if !ok {
		t.Fatalf("Expected an onClick handler")
	}
	click()

	// Assert
	root := r.GetCurrentVDOM()
	if r.RenderCount() != 2 {
		t.Errorf("Expected 2 renders, got %d", r.RenderCount())
	}
	if button(root, "Complete next") != nil {
		t.Errorf("Expected 'Complete next' to disappear once everything is done")
	}
	status := child(root, "div", 0)
	if done := child(status, "p", 1); done == nil || done.Content != "All done!" {
		t.Errorf("Expected 'All done!', got %+v", done)
	}
	if r.LiveInstances() != 1 {
		t.Errorf("Expected the status panel instance to be reused, got %d instances", r.LiveInstances())
	}
}

func TestHomePage_Add(t *testing.T) {
	h := NewHomePage("Todo")
	answers := []string{"first", ""}
	h.Ask = func(string) (string, bool) {
		a := answers[0]
		answers = answers[1:]
		return a, a != ""
	}
	r := mount(t, h)

	h.Add()
	h.Add() // cancelled

	ul := child(r.GetCurrentVDOM(), "ul", 0)
	if len(ul.Children) != 1 || ul.Children[0].Content != "first" {
		t.Errorf("Expected a single 'first' item, got %+v", ul.Children)
	}
	if r.RenderCount() != 2 {
		t.Errorf("Expected a cancelled prompt not to re-render, got %d renders", r.RenderCount())
	}
}

func TestHomePage_CompleteNextNotifiesWhenAllDone(t *testing.T) {
	// Arrange
	h := NewHomePage("Todo", Item{Text: "a"}, Item{Text: "b"})
	var notes []string
	h.Notify = func(msg string) { notes = append(notes, msg) }
	mount(t, h)

	// Act
	h.CompleteNext()
	h.CompleteNext()
	h.CompleteNext() // nothing left

	// Assert
	if len(notes) != 1 || notes[0] != "Everything is done!" {
		t.Errorf("Expected a single notification, got %q", notes)
	}
}

func TestHomePage_ClearDone(t *testing.T) {
	// Arrange
	h := NewHomePage("Todo", Item{Text: "a", Done: true}, Item{Text: "b"}, Item{Text: "c", Done: true})
	answers := []bool{false, true}
	var asked []string
	h.Confirm = func(msg string) bool {
		asked = append(asked, msg)
		a := answers[0]
		answers = answers[1:]
		return a
	}
	r := mount(t, h)
	if button(r.GetCurrentVDOM(), "Clear done") == nil {
		t.Fatalf("Expected the 'Clear done' button while items are done")
	}

	// Act
	h.ClearDone() // declined
	declined := len(h.Items.Get())
	clearDone, ok := button(r.GetCurrentVDOM(), "Clear done").Handler("onClick")
	if !ok {
		t.Fatalf("Expected an onClick handler")
	}
	clearDone()

	// Assert
	if declined != 3 {
		t.Errorf("Expected a declined confirm to keep 3 items, got %d", declined)
	}
	if len(asked) != 2 || asked[0] != "Remove 2 completed item(s)?" {
		t.Errorf("Unexpected confirm messages: %q", asked)
	}
	root := r.GetCurrentVDOM()
	ul := child(root, "ul", 0)
	if len(ul.Children) != 1 || ul.Children[0].Content != "b" {
		t.Errorf("Expected only 'b' to remain, got %+v", ul.Children)
	}
	if button(root, "Clear done") != nil {
		t.Errorf("Expected 'Clear done' to disappear once nothing is done")
	}
}

func TestStatusPanel_Empty(t *testing.T) {
	p := NewStatusPanel(map[string]any{"total": 0, "done": 0}, nil).(*StatusPanel)

	root := p.Render(testcomponents.NewTestRenderer(p))

	if len(root.Children) != 1 || root.Children[0].Content != "Nothing to do yet" {
		t.Errorf("Expected only the hint, got %+v", root.Children)
	}
}
