package runtime

import "github.com/vcrobe/nojs-html/vdom"

// Component is implemented by everything the runtime can mount.
// It has no build tags, so the same components render in the browser and
// in native tests.
type Component interface {
	// Render produces the virtual DOM tree for the component. The renderer
	// gives access to framework services like RenderChild.
	Render(r Renderer) *vdom.VNode

	// SetRenderer attaches the renderer so StateHasChanged can reach it.
	SetRenderer(r Renderer)
}

// ComponentFunc creates a component from the props and children of a
// component node. Register one under a tag name and the markup renderer
// produces nodes that Expand turns into mounted components.
type ComponentFunc func(props map[string]any, children []*vdom.VNode) Component
