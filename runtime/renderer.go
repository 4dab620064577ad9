package runtime

import "github.com/vcrobe/nojs-html/vdom"

// Renderer is the set of runtime operations components use.
// It has no build tags; RendererImpl serves the browser and
// testcomponents.TestRenderer serves native tests.
type Renderer interface {
	// RenderChild renders a child component. The key identifies the
	// instance across renders so its state survives re-renders.
	RenderChild(key string, child Component) *vdom.VNode

	// ReRender re-runs the render cycle. Used by StateHasChanged.
	ReRender()
}
