// Package render turns vdom trees into HTML.
//
// The renderer is used in two places: the live host writes the initial
// page and every toast container update with it, and the crispy CLI uses
// it to print a static snapshot.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(view.Container(toaster.Snapshot()))
//
// Text content and attribute values are always escaped. Only vdom.Raw
// nodes are written verbatim.
package render
