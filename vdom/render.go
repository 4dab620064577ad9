//go:build js || wasm

package vdom

import (
	"fmt"
	"syscall/js"

	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/events"
)

// callbacks holds the js.Func objects attached under each mount selector so
// they can be released when the mount is cleared.
var callbacks = map[string][]js.Func{}

// Clear removes everything rendered under selector and releases its event
// callbacks.
func Clear(selector string) {
	if selector == "" {
		return
	}

	for _, cb := range callbacks[selector] {
		cb.Release()
	}
	delete(callbacks, selector)

	mount := querySelector(selector)
	if !mount.Truthy() {
		return
	}
	mount.Set("innerHTML", "")
}

// RenderToSelector mounts the VNode under the first element matching the CSS selector.
func RenderToSelector(selector string, n *VNode) {
	if n == nil || selector == "" {
		return
	}
	mount := querySelector(selector)
	if !mount.Truthy() {
		return
	}

	var funcs []js.Func
	for _, el := range createNodes(n, &funcs) {
		mount.Call("appendChild", el)
	}
	callbacks[selector] = append(callbacks[selector], funcs...)
}

func querySelector(selector string) js.Value {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return js.Undefined()
	}
	mount := doc.Call("querySelector", selector)
	if !mount.Truthy() {
		console.Error("Mount element not found for selector:", selector)
	}
	return mount
}

// createNodes returns the DOM nodes for n: one element, or the flattened
// children of a fragment. Unexpanded components are left as comments.
func createNodes(n *VNode, funcs *[]js.Func) []js.Value {
	doc := js.Global().Get("document")
	if n == nil || !doc.Truthy() {
		return nil
	}

	switch n.Kind {
	case FragmentNode:
		var out []js.Value
		for _, c := range n.Children {
			out = append(out, createNodes(c, funcs)...)
		}
		return out

	case ComponentNode:
		out := []js.Value{doc.Call("createComment", fmt.Sprintf("component:%T", n.Component))}
		for _, c := range n.Children {
			out = append(out, createNodes(c, funcs)...)
		}
		return out
	}

	el := doc.Call("createElement", n.Tag)
	for key, value := range n.Props {
		setProp(el, key, value, funcs)
	}

	if n.Kind == LeafNode {
		if n.Content != "" {
			el.Set("innerHTML", n.Content)
		}
		return []js.Value{el}
	}
	for _, c := range n.Children {
		for _, child := range createNodes(c, funcs) {
			el.Call("appendChild", child)
		}
	}
	return []js.Value{el}
}

// setProp applies one prop to an element: event handlers become listeners,
// style maps become inline styles and other values become attributes.
func setProp(el js.Value, key string, value any, funcs *[]js.Func) {
	if sig, ok := events.Lookup(key); ok {
		var cb js.Func
		switch handler := value.(type) {
		case func():
			cb = js.FuncOf(func(this js.Value, args []js.Value) any {
				handler()
				return nil
			})
		case func(js.Value):
			cb = js.FuncOf(func(this js.Value, args []js.Value) any {
				if len(args) > 0 {
					handler(args[0])
				}
				return nil
			})
		default:
			return
		}
		el.Call("addEventListener", sig.Event, cb)
		*funcs = append(*funcs, cb)
		return
	}

	switch v := value.(type) {
	case nil, func(), func(js.Value):
	case bool:
		if v {
			el.Call("setAttribute", events.AttributeName(key), "")
		}
	case map[string]string:
		style := el.Get("style")
		for name, val := range v {
			style.Call("setProperty", name, val)
		}
	default:
		el.Call("setAttribute", events.AttributeName(key), fmt.Sprint(v))
	}
}
