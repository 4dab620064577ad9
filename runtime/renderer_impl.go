//go:build js || wasm

package runtime

import (
	"github.com/vcrobe/nojs-html/vdom"
)

// Compile-time assertion to ensure the concrete RendererImpl implements the Renderer interface.
var _ Renderer = (*RendererImpl)(nil)

// rootKey identifies the root component in the instance table.
const rootKey = "__root__"

// RendererImpl mounts a root component into the browser DOM and keeps its
// child instances alive across renders.
type RendererImpl struct {
	instances *Instances
	root      Component
	mountID   string
	mounted   bool
}

// NewRenderer creates a renderer that mounts under the element matching
// the CSS selector mountID.
func NewRenderer(mountID string) *RendererImpl {
	return &RendererImpl{
		instances: NewInstances(),
		mountID:   mountID,
	}
}

// SetCurrentComponent sets the root component to render.
func (r *RendererImpl) SetCurrentComponent(comp Component) {
	r.root = comp
}

// RenderRoot renders the root component and replaces the mounted DOM.
func (r *RendererImpl) RenderRoot() {
	if r.root == nil {
		return
	}

	r.instances.Begin()
	root := r.instances.Resolve(rootKey, r.root, r)
	tree := root.Render(r)
	r.instances.End()

	if r.mounted {
		vdom.Clear(r.mountID)
	}
	vdom.RenderToSelector(r.mountID, tree)
	r.mounted = true
}

// RenderChild renders a child component, reusing the instance stored
// under key so its state survives re-renders.
func (r *RendererImpl) RenderChild(key string, child Component) *vdom.VNode {
	return r.instances.Resolve(key, child, r).Render(r)
}

// ReRender re-renders the whole tree.
func (r *RendererImpl) ReRender() {
	r.RenderRoot()
}
