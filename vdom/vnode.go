package vdom

// Kind tells how a VNode is materialized by the host.
type Kind int

const (
	// StructuralNode is a plain element whose content is its child nodes.
	StructuralNode Kind = iota
	// LeafNode is a plain element whose content is raw inner HTML.
	LeafNode
	// ComponentNode delegates rendering to a framework component.
	ComponentNode
	// FragmentNode groups sibling nodes without a wrapping element.
	FragmentNode
)

func (k Kind) String() string {
	switch k {
	case StructuralNode:
		return "structural"
	case LeafNode:
		return "leaf"
	case ComponentNode:
		return "component"
	case FragmentNode:
		return "fragment"
	default:
		return "unknown"
	}
}

// InnerHTMLProp is the prop through which a node factory receives the raw
// inner HTML of a leaf element.
const InnerHTMLProp = "dangerouslySetInnerHTML"

// RawHTML is markup that must be inserted verbatim.
type RawHTML string

// VNode represents a virtual DOM node.
type VNode struct {
	Kind      Kind
	Tag       string         // The HTML tag name; empty for components and fragments
	Component any            // The component reference of a ComponentNode
	Props     map[string]any // The resolved properties of the node
	Children  []*VNode       // The child nodes
	Content   string         // Raw inner HTML of a LeafNode
}

// NewVNode creates a new element VNode. A node with children is structural,
// one without is a leaf holding content.
func NewVNode(tag string, props map[string]any, children []*VNode, content string) *VNode {
	kind := StructuralNode
	if len(children) == 0 {
		kind = LeafNode
	}
	return &VNode{
		Kind:     kind,
		Tag:      tag,
		Props:    props,
		Children: children,
		Content:  content,
	}
}

// NewComponent creates a VNode that delegates to a framework component.
func NewComponent(component any, props map[string]any, children []*VNode) *VNode {
	return &VNode{
		Kind:      ComponentNode,
		Component: component,
		Props:     props,
		Children:  children,
	}
}

// Fragment groups nodes under a wrapper-less node. Nil entries are dropped.
func Fragment(children ...*VNode) *VNode {
	return &VNode{Kind: FragmentNode, Children: Compact(children)}
}

// CreateElement is the default node-creation primitive. typ is either a tag
// name or a component reference. A RawHTML InnerHTMLProp is moved out of
// the props into the Content of the resulting leaf.
func CreateElement(typ any, props map[string]any, children []*VNode) *VNode {
	tag, ok := typ.(string)
	if !ok {
		return NewComponent(typ, props, children)
	}

	content := ""
	if raw, ok := props[InnerHTMLProp].(RawHTML); ok {
		content = string(raw)
		delete(props, InnerHTMLProp)
	}
	return NewVNode(tag, props, children, content)
}

// Compact returns nodes without nil entries. The input is not modified.
func Compact(nodes []*VNode) []*VNode {
	out := make([]*VNode, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Handler returns the callable stored under the given prop, if any.
func (v *VNode) Handler(prop string) (func(), bool) {
	if v == nil || v.Props == nil {
		return nil, false
	}
	f, ok := v.Props[prop].(func())
	return f, ok
}

// Style returns the structured style prop of the node.
func (v *VNode) Style() map[string]string {
	if v == nil || v.Props == nil {
		return nil
	}
	s, _ := v.Props["style"].(map[string]string)
	return s
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(props map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", props, children, "")
}

// Paragraph creates a <p> leaf holding the given raw content.
func Paragraph(content string, props map[string]any) *VNode {
	return NewVNode("p", props, nil, content)
}
