// Package vdom provides the virtual DOM nodes that toast content and the
// toast container are built from.
//
// A VNode tree is an in-memory description of markup. Toast render
// functions return VNodes, the view package wraps them in the animated
// container, and the render package turns the tree into HTML.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), Role("alert"),
//	    Strong(Text("Saved")),
//	    P(Text("Your changes have been stored.")),
//	)
//
// Arguments may be attributes, child nodes, slices of either, strings
// (converted to text nodes) or nil, which is skipped so that conditional
// children can be written inline.
package vdom
