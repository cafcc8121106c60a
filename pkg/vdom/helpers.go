package vdom

// Text creates a text node. Renderers escape its content.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Raw creates a node whose content is written as-is. Only pass markup the
// program controls.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element. It accepts the
// same child arguments as the element constructors; attributes are
// ignored.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, child := range children {
		node.Children = appendChild(node.Children, child)
	}
	return node
}

// appendChild adds child to children if it is a node, a node slice or a
// string, skipping nils.
func appendChild(children []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case *VNode:
		if v != nil {
			children = append(children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				children = append(children, c)
			}
		}
	case string:
		children = append(children, Text(v))
	}
	return children
}

// If returns node when cond holds and nil otherwise.
func If(cond bool, node *VNode) *VNode {
	if !cond {
		return nil
	}
	return node
}

// Range maps items to nodes. Nil results are dropped.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	nodes := make([]*VNode, 0, len(items))
	for i, item := range items {
		nodes = appendChild(nodes, fn(item, i))
	}
	return nodes
}

// Key sets the node's reconciliation key.
func Key(key string) Attr {
	return attr("key", key)
}
