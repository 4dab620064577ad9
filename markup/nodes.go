package markup

import (
	"github.com/vcrobe/nojs-html/vdom"
	"golang.org/x/net/html"
)

// build materializes n as a single node. Explicit children, from an
// iteration, are used as given; otherwise n's own children are interpreted.
// A registered tag always becomes a component. An element with no child
// nodes becomes a leaf carrying its substituted inner HTML when its children
// were computed here; a loop that produced nothing leaves the leaf empty.
func (r *Renderer) build(n *html.Node, scope tokenScope, explicit []*vdom.VNode, recursive bool) (*vdom.VNode, error) {
	props, err := r.props(n, scope)
	if err != nil {
		return nil, err
	}

	children := explicit
	if recursive {
		if children, err = r.interpretChildren(n, scope); err != nil {
			return nil, err
		}
	}
	children = vdom.Compact(children)

	if component, ok := r.registry[registryKey(n.Data)]; ok {
		return r.factory(component, props, children), nil
	}

	if len(children) > 0 {
		return r.factory(n.Data, props, children), nil
	}

	if recursive {
		inner, err := innerHTML(n)
		if err != nil {
			return nil, err
		}
		props[vdom.InnerHTMLProp] = vdom.RawHTML(scope.substitute(inner, r.replaceAll))
	}
	return r.factory(n.Data, props, nil), nil
}
