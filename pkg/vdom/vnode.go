package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText and KindRaw
}

// Props holds element attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Prop returns the attribute value for key and whether it was set.
func (v *VNode) Prop(key string) (any, bool) {
	if v == nil || v.Props == nil {
		return nil, false
	}
	val, ok := v.Props[key]
	return val, ok
}

// Walk visits v and all its descendants depth-first, parents first.
// Returning false from fn skips the node's children.
func (v *VNode) Walk(fn func(*VNode) bool) {
	if v == nil {
		return
	}
	if !fn(v) {
		return
	}
	for _, child := range v.Children {
		child.Walk(fn)
	}
}

// TextContent concatenates the text of all text nodes below v.
func (v *VNode) TextContent() string {
	var out []byte
	v.Walk(func(n *VNode) bool {
		if n.Kind == KindText {
			out = append(out, n.Text...)
		}
		return true
	})
	return string(out)
}
