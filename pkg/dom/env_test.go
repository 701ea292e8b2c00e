package dom

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type harness struct {
	doc  *Document
	root *reconcile.Root[*Node, string]
	r    *reconcile.Reconciler[*Node, string]
}

func newHarness() *harness {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	doc := NewDocument()
	r := reconcile.New[*Node, string](NewEnv(WithLogger(logger)), reconcile.WithLogger(logger))
	return &harness{doc: doc, r: r, root: r.NewRoot(doc.Root(), "", nil)}
}

func (h *harness) render(t *testing.T, v vdom.Node) {
	t.Helper()
	if err := h.root.Render(context.Background(), v); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func TestEnvNodeTypes(t *testing.T) {
	h := newHarness()
	h.render(t, vdom.Fragment(nil, "text", vdom.P()))

	kids := h.doc.Root().Children()
	if len(kids) != 2 {
		t.Fatalf("children = %d, want 2", len(kids))
	}
	if kids[0].Type() != TextNode || kids[1].Type() != ElementNode {
		t.Errorf("types = %v, %v", kids[0].Type(), kids[1].Type())
	}

	h2 := newHarness()
	h2.render(t, vdom.Nothing())
	if got := h2.doc.Root().FirstChild().Type(); got != CommentNode {
		t.Errorf("empty renders as %v, want comment", got)
	}
}

func TestEnvNamespaces(t *testing.T) {
	h := newHarness()
	h.render(t, vdom.Div(
		vdom.Svg(vdom.Circle()),
		vdom.El("math", vdom.El("mi")),
		vdom.El("custom", vdom.Xmlns("urn:x"), vdom.El("child")),
		vdom.Span(),
	))

	tests := []struct {
		tag  string
		want string
	}{
		{"div", ""},
		{"svg", NamespaceSVG},
		{"circle", NamespaceSVG},
		{"math", NamespaceMathML},
		{"mi", NamespaceMathML},
		{"custom", "urn:x"},
		{"child", "urn:x"},
		{"span", ""},
	}
	for _, tt := range tests {
		n := ByTag(h.doc.Root(), tt.tag)
		if n == nil {
			t.Fatalf("no <%s>", tt.tag)
		}
		if got := n.Namespace(); got != tt.want {
			t.Errorf("<%s> namespace = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestEnvAttributes(t *testing.T) {
	h := newHarness()
	h.render(t, vdom.Input(vdom.Type("checkbox"), vdom.Disabled(true), vdom.Hidden(), vdom.A("tabindex", 3), vdom.A("readonly", false)))
	input := ByTag(h.doc.Root(), "input")

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"type", "checkbox", true},
		{"disabled", "", true},
		{"hidden", "", true},
		{"tabindex", "3", true},
		{"readonly", "", false},
	}
	for _, tt := range tests {
		got, ok := input.Attr(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Attr(%s) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}

	h.render(t, vdom.Input(vdom.Type("text"), vdom.Disabled(false)))
	if _, ok := input.Attr("disabled"); ok {
		t.Error("false should remove the attribute")
	}
	if _, ok := input.Attr("hidden"); ok {
		t.Error("dropped prop should remove the attribute")
	}
	if v, _ := input.Attr("type"); v != "text" {
		t.Errorf("type = %q, want text", v)
	}
}

func TestEnvSpecialProps(t *testing.T) {
	h := newHarness()
	h.render(t, vdom.Input(vdom.Key("k"), vdom.Value("a"), vdom.Checked(true)))
	input := ByTag(h.doc.Root(), "input")

	if len(input.Attrs()) != 0 {
		t.Errorf("special props became attributes: %v", input.Attrs())
	}
	if input.Prop("value") != "a" || input.Prop("checked") != true {
		t.Errorf("props = %v, %v", input.Prop("value"), input.Prop("checked"))
	}

	h.render(t, vdom.Input(vdom.Key("k"), vdom.Value("b")))
	if input.Prop("value") != "b" {
		t.Errorf("value = %v, want b", input.Prop("value"))
	}
	if input.Prop("checked") != nil {
		t.Errorf("checked = %v, want cleared", input.Prop("checked"))
	}
}

func TestEnvInnerHTMLAfterChildren(t *testing.T) {
	h := newHarness()
	h.render(t, vdom.Div(vdom.InnerHTML("<b>raw</b>")))

	if got := ByTag(h.doc.Root(), "div").Prop("innerHTML"); got != "<b>raw</b>" {
		t.Errorf("innerHTML = %v", got)
	}
}

func TestEnvEvents(t *testing.T) {
	h := newHarness()
	clicks := 0
	h.render(t, vdom.Button(vdom.A("onClick", func() { clicks++ }), "go"))
	button := ByTag(h.doc.Root(), "button")

	button.Dispatch("click", nil)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if _, ok := button.Attr("onClick"); ok {
		t.Error("event props must not become attributes")
	}

	h.render(t, vdom.Button("go"))
	button.Dispatch("click", nil)
	if clicks != 1 {
		t.Errorf("removed handler still fired, clicks = %d", clicks)
	}
}

func TestEnvNodeRef(t *testing.T) {
	h := newHarness()
	ref := &NodeRef{}
	h.render(t, vdom.Div(vdom.Ref(ref)))

	if ref.Current == nil || ref.Current.Tag() != "div" {
		t.Fatalf("ref.Current = %v", ref.Current)
	}

	if err := h.root.Unmount(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ref.Current != nil {
		t.Error("ref should be cleared on unmount")
	}
}

func TestEnvFuncRef(t *testing.T) {
	h := newHarness()
	var seen []*Node
	capture := func(n *Node) { seen = append(seen, n) }
	h.render(t, vdom.Div(vdom.Ref(capture)))
	h.render(t, vdom.Div(vdom.Ref(capture)))

	if len(seen) != 1 {
		t.Fatalf("func ref called %d times across an unchanged update, want 1", len(seen))
	}
	if err := h.root.Unmount(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[1] != nil {
		t.Errorf("unmount should call the ref with nil, got %v", seen)
	}
}

// A shared NodeRef moved to a replacement node keeps pointing at it after
// the old node is unmounted.
func TestEnvNodeRefSurvivesReplacement(t *testing.T) {
	h := newHarness()
	ref := &NodeRef{}
	h.render(t, vdom.Div(vdom.Ref(ref)))
	h.render(t, vdom.Section(vdom.Ref(ref)))

	if ref.Current == nil || ref.Current.Tag() != "section" {
		t.Errorf("ref.Current = %v, want <section>", ref.Current)
	}
}

func TestEnvLeafUpdate(t *testing.T) {
	h := newHarness()
	h.render(t, vdom.P("old"))
	text := ByTag(h.doc.Root(), "p").FirstChild()

	h.render(t, vdom.P("new"))

	if ByTag(h.doc.Root(), "p").FirstChild() != text {
		t.Error("text node should be reused")
	}
	if text.Data() != "new" {
		t.Errorf("Data() = %q, want new", text.Data())
	}
}
