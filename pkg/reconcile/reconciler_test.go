package reconcile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vtree/pkg/vdom"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestReconciler() (*Reconciler[*fakeNode, string], *fakeEnv, *fakeNode) {
	env, root := newFakeEnv()
	return New[*fakeNode, string](env, WithLogger(quietLogger())), env, root
}

func mustMount(t *testing.T, r *Reconciler[*fakeNode, string], root *fakeNode, v vdom.Node) Ref {
	t.Helper()
	ref, err := r.Mount(context.Background(), root, nil, "", v, nil)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return ref
}

func mustUpdate(t *testing.T, r *Reconciler[*fakeNode, string], ref Ref, v vdom.Node) Ref {
	t.Helper()
	next, err := r.Update(context.Background(), ref, "", v, nil)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	return next
}

func keyedItems(keys ...string) *vdom.List {
	items := make([]vdom.Node, len(keys))
	for i, k := range keys {
		items[i] = vdom.Li(vdom.Key(k), k)
	}
	return &vdom.List{Items: items}
}

func TestMountKinds(t *testing.T) {
	tests := []struct {
		name string
		node vdom.Node
		want string
		kind RefKind
	}{
		{"empty", nil, "<!>", RefItem},
		{"leaf", vdom.Text("hi"), "hi", RefItem},
		{"number", vdom.Num(7), "7", RefItem},
		{"element", vdom.Div(vdom.Span("a"), "b"), "<div><span>a</span>b</div>", RefItem},
		{"list", vdom.Fragment("a", vdom.P("b")), "a<p>b</p>", RefList},
		{"empty list", &vdom.List{}, "<!>", RefItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, root := newTestReconciler()
			ref := mustMount(t, r, root, tt.node)
			if got := root.html(); got != tt.want {
				t.Errorf("html = %q, want %q", got, tt.want)
			}
			if got := r.Kind(ref); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestMountElementPassOrder(t *testing.T) {
	r, env, root := newTestReconciler()
	mustMount(t, r, root, vdom.Ul(vdom.Li("x")))

	want := []string{
		"create ul",
		"insert ul before end",
		"mount-before ul",
		"create li",
		"insert li before end",
		"mount-before li",
		`create "x"`,
		`insert "x" before end`,
		"mount-after li",
		"mount-after ul",
	}
	if diff := cmp.Diff(want, env.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestMountBeforeReference(t *testing.T) {
	r, _, root := newTestReconciler()
	tail := mustMount(t, r, root, vdom.Text("tail"))
	tailNode, _ := r.Native(tail)

	if _, err := r.Mount(context.Background(), root, tailNode, "", vdom.Fragment("a", "b"), nil); err != nil {
		t.Fatal(err)
	}
	if got := root.html(); got != "abtail" {
		t.Errorf("html = %q, want abtail", got)
	}
}

func TestStateThreadsToChildren(t *testing.T) {
	r, _, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Svg(vdom.Circle()))

	if got := r.State(ref); got != "/svg" {
		t.Errorf("svg state = %q, want /svg", got)
	}
	child, ok := r.Child(ref)
	if !ok {
		t.Fatal("svg should have a child ref")
	}
	if got := r.State(child); got != "/svg/circle" {
		t.Errorf("circle state = %q, want /svg/circle", got)
	}
}

// Updating with the vnode already stored on the ref touches nothing.
func TestUpdateIdentity(t *testing.T) {
	r, env, root := newTestReconciler()
	v := vdom.Ul(keyedItems("a", "b"))
	ref := mustMount(t, r, root, v)
	env.reset()

	next := mustUpdate(t, r, ref, v)

	if next != ref {
		t.Errorf("Update() = %v, want %v", next, ref)
	}
	if len(env.calls) != 0 || env.queries != 0 {
		t.Errorf("calls = %v, queries = %d, want none", env.calls, env.queries)
	}
}

// Mount then unmount creates and removes each native node exactly once.
func TestMountUnmountBalanced(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Div(
		vdom.H1("title"),
		vdom.Ul(keyedItems("a", "b", "c")),
		nil,
	))

	if len(env.created) != 10 {
		t.Fatalf("created %d nodes, want 10: %v", len(env.created), env.created)
	}
	if err := r.Unmount(context.Background(), ref); err != nil {
		t.Fatal(err)
	}
	if len(env.removed) != len(env.created) {
		t.Errorf("removed %d nodes, created %d", len(env.removed), len(env.created))
	}
	if r.Live() != 0 {
		t.Errorf("Live() = %d, want 0", r.Live())
	}
	if len(root.children) != 0 {
		t.Errorf("root still has %d children", len(root.children))
	}
}

func TestKeyedReuse(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Ul(keyedItems("1", "2", "3")))
	ul := root.children[0]
	before := map[string]*fakeNode{}
	for _, li := range ul.children {
		before[li.key] = li
	}
	env.reset()

	mustUpdate(t, r, ref, vdom.Ul(keyedItems("3", "1", "2")))

	if got := ul.html(); got != "<li>3</li><li>1</li><li>2</li>" {
		t.Errorf("html = %q", got)
	}
	if c := env.count("create"); c != 0 {
		t.Errorf("creates = %d, want 0", c)
	}
	if c := env.count("remove"); c != 0 {
		t.Errorf("removes = %d, want 0", c)
	}
	if c := env.count("insert"); c != 3 {
		t.Errorf("inserts = %d, want 3", c)
	}
	for _, li := range ul.children {
		if before[li.key] != li {
			t.Errorf("li[%s] was not reused", li.key)
		}
	}
}

func TestKeyedListAddRemove(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Ul(keyedItems("a", "b", "c", "d")))
	env.reset()

	mustUpdate(t, r, ref, vdom.Ul(keyedItems("c", "x", "a")))

	if got := root.html(); got != "<ul><li>c</li><li>x</li><li>a</li></ul>" {
		t.Errorf("html = %q", got)
	}
	want := []string{"li[x]", `"x"`}
	if diff := cmp.Diff(want, env.created); diff != "" {
		t.Errorf("created (-want +got):\n%s", diff)
	}
	// Leftovers go last to first, each child before its parent.
	wantRemoved := []string{`"d"`, "li[d]", `"b"`, "li[b]"}
	if diff := cmp.Diff(wantRemoved, env.removed); diff != "" {
		t.Errorf("removed (-want +got):\n%s", diff)
	}
}

// A list slot with the same key but a different type is replaced: the new
// node is mounted before the old one is unmounted.
func TestKeyedTypeMismatchReplaces(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Fragment(vdom.El("a", vdom.Key("1")), "tail"))
	env.reset()

	mustUpdate(t, r, ref, vdom.Fragment(vdom.El("b", vdom.Key("1")), "tail"))

	if got := root.html(); got != "<b></b>tail" {
		t.Errorf("html = %q", got)
	}
	if c := env.count("update-before a") + env.count("update-before b"); c != 0 {
		t.Errorf("no in-place element update expected, got %v", env.calls)
	}
	create, remove := -1, -1
	for i, c := range env.calls {
		switch c {
		case "create b[1]":
			create = i
		case "remove a[1]":
			remove = i
		}
	}
	if create < 0 || remove < 0 || create > remove {
		t.Errorf("want create b before remove a, calls = %v", env.calls)
	}
}

// Unkeyed members of different kinds pair first-found; the result must
// still be in new-list order.
func TestListMixedKinds(t *testing.T) {
	r, _, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Fragment("a", vdom.Span("b"), "c"))

	mustUpdate(t, r, ref, vdom.Fragment("a", "B", "c"))

	if got := root.html(); got != "aBc" {
		t.Errorf("html = %q, want aBc", got)
	}
}

func TestReplaceAtRoot(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Div("x"))
	old, _ := r.Native(ref)
	env.reset()

	next := mustUpdate(t, r, ref, vdom.Text("plain"))

	if next == ref {
		t.Error("replacement should return a new ref")
	}
	if r.Valid(ref) {
		t.Error("replaced ref should be stale")
	}
	if got := root.html(); got != "plain" {
		t.Errorf("html = %q", got)
	}
	if old.parent != nil {
		t.Error("old node should be detached")
	}
}

func TestElementKeyChangeReplaces(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Div(vdom.Key("a")))
	env.reset()

	next := mustUpdate(t, r, ref, vdom.Div(vdom.Key("b")))

	if next == ref {
		t.Error("key change should replace")
	}
	if env.count("create") != 1 || env.count("remove") != 1 {
		t.Errorf("calls = %v", env.calls)
	}
}

func TestUpdateLeafText(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.P("old"))
	env.reset()

	mustUpdate(t, r, ref, vdom.P("new"))

	if got := root.html(); got != "<p>new</p>" {
		t.Errorf("html = %q", got)
	}
	if env.count("create") != 0 || env.count("remove") != 0 {
		t.Errorf("calls = %v", env.calls)
	}
}

func TestUpdateEmptyToEmpty(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Nothing())
	env.reset()

	next := mustUpdate(t, r, ref, &vdom.List{})

	if next != ref || len(env.calls) != 0 {
		t.Errorf("Empty→Empty should only record the vnode, calls = %v", env.calls)
	}
	if _, ok := r.VNode(ref).(*vdom.List); !ok {
		t.Errorf("VNode() = %T, want the new vnode", r.VNode(ref))
	}
}

func TestUpdateChildrenAppearDisappear(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Div())

	mustUpdate(t, r, ref, vdom.Div("hello"))
	if got := root.html(); got != "<div>hello</div>" {
		t.Errorf("after add html = %q", got)
	}
	if _, ok := r.Child(ref); !ok {
		t.Error("child ref expected")
	}

	env.reset()
	mustUpdate(t, r, ref, vdom.Div())
	if got := root.html(); got != "<div></div>" {
		t.Errorf("after remove html = %q", got)
	}
	if _, ok := r.Child(ref); ok {
		t.Error("child ref should be gone")
	}
	if diff := cmp.Diff([]string{`"hello"`}, env.removed); diff != "" {
		t.Errorf("removed (-want +got):\n%s", diff)
	}
}

func TestUpdateAttrs(t *testing.T) {
	r, _, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Div(vdom.Class("a")))
	mustUpdate(t, r, ref, vdom.Div(vdom.Class("b"), vdom.ID("x")))

	div := root.children[0]
	if div.attrs["class"] != "b" || div.attrs["id"] != "x" {
		t.Errorf("attrs = %v", div.attrs)
	}
}

func TestRoundTrip(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Ul(vdom.Li(vdom.Key("a"), "one"), vdom.Li(vdom.Key("b"), "two")))
	ref = mustUpdate(t, r, ref, vdom.Ul(vdom.Li(vdom.Key("a"), "uno"), vdom.Li(vdom.Key("b"), "two")))

	if err := r.Unmount(context.Background(), ref); err != nil {
		t.Fatal(err)
	}
	want := []string{`"two"`, "li[b]", `"uno"`, "li[a]", "ul"}
	if diff := cmp.Diff(want, env.removed); diff != "" {
		t.Errorf("removed (-want +got):\n%s", diff)
	}
	if len(env.created) != len(env.removed) {
		t.Errorf("created %v, removed %v", env.created, env.removed)
	}
}

func TestUnmountPassOrder(t *testing.T) {
	r, env, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Ul(vdom.Li("x")))
	env.reset()

	if err := r.Unmount(context.Background(), ref); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"unmount-before ul",
		"unmount-before li",
		`unmount-before "x"`,
		`unmount-after "x"`,
		`remove "x"`,
		"unmount-after li",
		"remove li",
		"unmount-after ul",
		"remove ul",
	}
	if diff := cmp.Diff(want, env.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestStaleRef(t *testing.T) {
	r, _, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Text("x"))
	if err := r.Unmount(context.Background(), ref); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Update(context.Background(), ref, "", vdom.Text("y"), nil); !errors.Is(err, ErrStaleRef) {
		t.Errorf("Update(stale) error = %v, want ErrStaleRef", err)
	}
	if err := r.Unmount(context.Background(), ref); !errors.Is(err, ErrStaleRef) {
		t.Errorf("Unmount(stale) error = %v, want ErrStaleRef", err)
	}

	// The freed slot is reused with a new generation.
	fresh := mustMount(t, r, root, vdom.Text("z"))
	if fresh == ref {
		t.Error("reused slot must not produce an equal handle")
	}
	if r.Valid(ref) {
		t.Error("old handle must stay invalid after slot reuse")
	}
}

func TestInvalidNode(t *testing.T) {
	r, _, root := newTestReconciler()

	if _, err := r.Mount(context.Background(), root, nil, "", &vdom.Element{}, nil); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Mount(invalid) error = %v, want ErrInvalidNode", err)
	}

	ref := mustMount(t, r, root, vdom.Div())
	if _, err := r.Update(context.Background(), ref, "", &vdom.Component{}, nil); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Update(invalid) error = %v, want ErrInvalidNode", err)
	}

	if _, err := r.Mount(context.Background(), root, nil, "", vdom.Fragment("ok", (*vdom.Leaf)(nil)), nil); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Mount(list with invalid member) error = %v, want ErrInvalidNode", err)
	}

	if _, err := r.Mount(context.Background(), root, nil, "", vdom.Div(struct{}{}), nil); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Mount(element with unsupported child) error = %v, want ErrInvalidNode", err)
	}
}

func TestMountNumberChild(t *testing.T) {
	r, _, root := newTestReconciler()
	mustMount(t, r, root, vdom.Span(5))
	if got := root.html(); got != "<span>5</span>" {
		t.Errorf("html = %q, want <span>5</span>", got)
	}
}

func TestNestedListReorder(t *testing.T) {
	r, _, root := newTestReconciler()
	group := func(k string, items ...string) vdom.Node {
		return vdom.Fragment(vdom.Span(vdom.Key(k), k), keyedItems(items...))
	}
	ref := mustMount(t, r, root, vdom.Div(vdom.Fragment(group("g1", "a", "b"), group("g2", "c"))))

	mustUpdate(t, r, ref, vdom.Div(vdom.Fragment(group("g2", "c"), group("g1", "b", "a"))))

	// Unkeyed nested lists pair first-found, so the first old group is
	// reused for the first new group and updated in place.
	want := "<div><span>g2</span><li>c</li><span>g1</span><li>b</li><li>a</li></div>"
	if got := root.html(); got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
}

func TestNodes(t *testing.T) {
	r, _, root := newTestReconciler()
	ref := mustMount(t, r, root, vdom.Fragment("a", vdom.Fragment("b", "c")))

	nodes := r.Nodes(ref)
	if len(nodes) != 3 {
		t.Fatalf("Nodes() = %d nodes, want 3", len(nodes))
	}
	for i, want := range []string{"a", "b", "c"} {
		if nodes[i].text != want {
			t.Errorf("Nodes()[%d] = %q, want %q", i, nodes[i].text, want)
		}
	}
	if got := len(r.Items(ref)); got != 2 {
		t.Errorf("Items() = %d, want 2", got)
	}
}

func TestRoot(t *testing.T) {
	r, _, container := newTestReconciler()
	root := r.NewRoot(container, "", nil)
	ctx := context.Background()

	if err := root.Render(ctx, vdom.P("one")); err != nil {
		t.Fatal(err)
	}
	if err := root.Render(ctx, vdom.P("two")); err != nil {
		t.Fatal(err)
	}
	if got := container.html(); got != "<p>two</p>" {
		t.Errorf("html = %q", got)
	}
	if err := root.Unmount(ctx); err != nil {
		t.Fatal(err)
	}
	if root.Mounted() || container.html() != "" {
		t.Errorf("after Unmount html = %q", container.html())
	}
}

func TestChildren(t *testing.T) {
	r, _, root := newTestReconciler()
	c := vdom.Define("Wrap", func(vdom.Props, vdom.Instance) vdom.Render {
		return func(vdom.Props) vdom.Node { return vdom.Fragment("a", "b") }
	})
	ref := mustMount(t, r, root, vdom.Div(vdom.Comp(c, nil)))

	kids := r.Children(ref)
	if len(kids) != 1 || r.Kind(kids[0]) != RefComponent {
		t.Fatalf("Children(div) = %v", kids)
	}
	rendered := r.Children(kids[0])
	if len(rendered) != 1 || r.Kind(rendered[0]) != RefList {
		t.Fatalf("Children(component) = %v", rendered)
	}
	if got := len(r.Children(rendered[0])); got != 2 {
		t.Errorf("Children(list) = %d refs, want 2", got)
	}
	if got := r.Children(r.Children(rendered[0])[0]); got != nil {
		t.Errorf("Children(leaf) = %v, want nil", got)
	}
}
