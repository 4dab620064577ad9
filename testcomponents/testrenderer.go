// Package testcomponents holds an in-memory renderer and sample components
// used to exercise the runtime without a browser.
package testcomponents

import (
	"github.com/vcrobe/nojs-html/runtime"
	"github.com/vcrobe/nojs-html/vdom"
)

// TestRenderer is a minimal test harness that implements runtime.Renderer
// for in-memory testing without browser or WASM dependencies.
//
// It captures VDOM output from component renders and allows tests to:
// - Attach components to the renderer
// - Trigger re-renders via StateHasChanged()
// - Inspect the resulting VDOM tree
type TestRenderer struct {
	currentVDOM *vdom.VNode
	component   runtime.Component
	instances   *runtime.Instances
	renders     int
}

// Compile-time assertion to ensure TestRenderer implements runtime.Renderer interface.
var _ runtime.Renderer = (*TestRenderer)(nil)

// NewTestRenderer creates a test renderer attached to the given component.
func NewTestRenderer(comp runtime.Component) *TestRenderer {
	r := &TestRenderer{
		component: comp,
		instances: runtime.NewInstances(),
	}
	comp.SetRenderer(r)
	return r
}

// RenderRoot performs a render of the root component and returns its tree.
func (r *TestRenderer) RenderRoot() *vdom.VNode {
	r.instances.Begin()
	r.currentVDOM = r.component.Render(r)
	r.instances.End()
	r.renders++
	return r.currentVDOM
}

// ReRender is called by StateHasChanged().
func (r *TestRenderer) ReRender() {
	r.RenderRoot()
}

// GetCurrentVDOM returns the most recently rendered VDOM tree.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	return r.currentVDOM
}

// RenderCount reports how many render cycles have run.
func (r *TestRenderer) RenderCount() int {
	return r.renders
}

// LiveInstances reports how many child instances are mounted.
func (r *TestRenderer) LiveInstances() int {
	return r.instances.Len()
}

// RenderChild renders a child component, keeping its instance across
// renders the way the browser renderer does.
func (r *TestRenderer) RenderChild(key string, child runtime.Component) *vdom.VNode {
	return r.instances.Resolve(key, child, r).Render(r)
}
