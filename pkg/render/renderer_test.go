package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/crispy/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "nil",
			node: nil,
			want: "",
		},
		{
			name: "text is escaped",
			node: vdom.Text(`<b>"hi" & 'bye'</b>`),
			want: "&lt;b&gt;&quot;hi&quot; &amp; &#39;bye&#39;&lt;/b&gt;",
		},
		{
			name: "raw is verbatim",
			node: vdom.Raw("<i>x</i>"),
			want: "<i>x</i>",
		},
		{
			name: "attributes sorted",
			node: vdom.Div(vdom.Role("alert"), vdom.Class("card"), vdom.Data("toast-id", "7"), vdom.Text("ok")),
			want: `<div class="card" data-toast-id="7" role="alert">ok</div>`,
		},
		{
			name: "key not rendered",
			node: vdom.Div(vdom.Key("3")),
			want: `<div></div>`,
		},
		{
			name: "boolean attribute",
			node: vdom.Button(vdom.Disabled(true), vdom.Text("x")),
			want: `<button disabled>x</button>`,
		},
		{
			name: "false boolean attribute omitted",
			node: vdom.Button(vdom.Disabled(false)),
			want: `<button></button>`,
		},
		{
			name: "void element",
			node: vdom.Meta(vdom.Charset("utf-8")),
			want: `<meta charset="utf-8">`,
		},
		{
			name: "fragment",
			node: vdom.Fragment(vdom.Span("a"), "b"),
			want: `<span>a</span>b`,
		},
		{
			name: "attribute escaping",
			node: vdom.Div(vdom.StyleAttr("a:\"b\"\n")),
			want: `<div style="a:&quot;b&quot;&#10;"></div>`,
		},
	}

	r := NewRenderer(RendererConfig{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("RenderToString: %v", err)
			}
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	got, err := r.RenderToString(vdom.Div(vdom.P("one"), vdom.P("two")))
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n  <p>one</p>\n  <p>two</p>\n</div>\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	_, err := r.RenderToString(&vdom.VNode{Kind: vdom.VKind(42)})
	if err == nil || !strings.Contains(err.Error(), "unknown node kind") {
		t.Fatalf("expected unknown node kind error, got %v", err)
	}
}

func TestRenderElementWithoutTag(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.KindElement}); err == nil {
		t.Fatal("expected error for element without tag")
	}
}
