package render

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func mount(t *testing.T, v vdom.Node) *dom.Document {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc := dom.NewDocument()
	r := reconcile.New[*dom.Node, string](dom.NewEnv(dom.WithLogger(logger)), reconcile.WithLogger(logger))
	if _, err := r.Mount(context.Background(), doc.Root(), nil, "", v, nil); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return doc
}

func TestHTMLString(t *testing.T) {
	tests := []struct {
		name string
		node vdom.Node
		want string
	}{
		{
			name: "text is escaped",
			node: vdom.P("a < b & c"),
			want: "<p>a &lt; b &amp; c</p>",
		},
		{
			name: "attributes are sorted and escaped",
			node: vdom.Div(vdom.ID("x"), vdom.Class("a b"), vdom.Data("q", `say "hi"`)),
			want: `<div class="a b" data-q="say &quot;hi&quot;" id="x"></div>`,
		},
		{
			name: "boolean attributes",
			node: vdom.Input(vdom.Disabled(true), vdom.Hidden(), vdom.A("readonly", false)),
			want: "<input disabled hidden>",
		},
		{
			name: "void elements have no closing tag",
			node: vdom.Fragment(vdom.El("br"), vdom.El("img", vdom.A("src", "a.png"))),
			want: `<br><img src="a.png">`,
		},
		{
			name: "empty renders as a comment",
			node: vdom.Div(vdom.Nothing()),
			want: "<div><!----></div>",
		},
		{
			name: "event handlers are not serialised",
			node: vdom.Button(vdom.OnClick(func() {}), "go"),
			want: "<button>go</button>",
		},
		{
			name: "live value and checked",
			node: vdom.Input(vdom.Value("v"), vdom.Checked(true)),
			want: `<input checked value="v">`,
		},
		{
			name: "inner html",
			node: vdom.Div(vdom.InnerHTML("<b>raw</b>")),
			want: "<div><b>raw</b></div>",
		},
		{
			name: "svg children are not void",
			node: vdom.Svg(vdom.El("image")),
			want: "<svg><image></image></svg>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTMLString(mount(t, tt.node).Root())
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("HTMLString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRendererPretty(t *testing.T) {
	doc := mount(t, vdom.Ul(vdom.Li("a"), vdom.Li("b")))
	got, err := NewRenderer(Config{Pretty: true}).RenderString(doc.Root())
	if err != nil {
		t.Fatal(err)
	}
	want := "<ul>\n  <li>\n    a\n  </li>\n  <li>\n    b\n  </li>\n</ul>\n"
	if got != want {
		t.Errorf("pretty output = %q, want %q", got, want)
	}
}

func TestHTMLNil(t *testing.T) {
	got, err := HTMLString(nil)
	if err != nil || got != "" {
		t.Errorf("HTMLString(nil) = %q, %v", got, err)
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a\nb", "a&#10;b"},
		{"tab\there", "tab&#9;here"},
		{"it's", "it&#39;s"},
		{`<"&>`, "&lt;&quot;&amp;&gt;"},
	}
	for _, tt := range tests {
		if got := escapeAttr(tt.in); got != tt.want {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeComment(t *testing.T) {
	if got := escapeComment("a-->b"); got != "a- ->b" {
		t.Errorf("escapeComment() = %q", got)
	}
}
