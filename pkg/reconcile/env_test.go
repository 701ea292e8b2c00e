package reconcile

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// fakeNode is a minimal native tree used to observe reconciler behaviour.
type fakeNode struct {
	id       int
	tag      string // "#text", "#comment" or an element tag
	text     string
	key      string
	attrs    map[string]string
	parent   *fakeNode
	children []*fakeNode
}

func (n *fakeNode) label() string {
	switch n.tag {
	case "#text":
		return fmt.Sprintf("%q", n.text)
	case "#comment":
		return "<!>"
	}
	if n.key != "" {
		return n.tag + "[" + n.key + "]"
	}
	return n.tag
}

func (n *fakeNode) indexOf(child *fakeNode) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// html renders the children of n, which is how tests assert structure.
func (n *fakeNode) html() string {
	var b strings.Builder
	for _, c := range n.children {
		c.write(&b)
	}
	return b.String()
}

func (n *fakeNode) write(b *strings.Builder) {
	switch n.tag {
	case "#text":
		b.WriteString(n.text)
	case "#comment":
		b.WriteString("<!>")
	default:
		b.WriteString("<" + n.tag + ">")
		for _, c := range n.children {
			c.write(b)
		}
		b.WriteString("</" + n.tag + ">")
	}
}

// fakeEnv records every mutating port call. State is the slash-joined
// path of ancestor tags.
type fakeEnv struct {
	nextID  int
	calls   []string
	queries int

	created []string
	removed []string
}

func newFakeEnv() (*fakeEnv, *fakeNode) {
	return &fakeEnv{}, &fakeNode{tag: "root"}
}

func (e *fakeEnv) reset() {
	e.calls = nil
	e.queries = 0
	e.created = nil
	e.removed = nil
}

func (e *fakeEnv) count(prefix string) int {
	n := 0
	for _, c := range e.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (e *fakeEnv) CreateNode(v vdom.Node, parent string) (*fakeNode, string) {
	e.nextID++
	n := &fakeNode{id: e.nextID}
	state := parent
	switch vdom.KindOf(v) {
	case vdom.KindEmpty:
		n.tag = "#comment"
	case vdom.KindLeaf:
		n.tag = "#text"
		n.text = v.(*vdom.Leaf).Text
	case vdom.KindElement:
		el := v.(*vdom.Element)
		n.tag = el.Tag
		n.key = el.Key
		n.attrs = map[string]string{}
		state = parent + "/" + el.Tag
	default:
		panic("fakeEnv: CreateNode on " + vdom.KindOf(v).String())
	}
	e.calls = append(e.calls, "create "+n.label())
	e.created = append(e.created, n.label())
	return n, state
}

func (e *fakeEnv) MountAttrsBefore(n *fakeNode, v vdom.Node, state string) {
	e.calls = append(e.calls, "mount-before "+n.label())
	if el, ok := v.(*vdom.Element); ok {
		for k, val := range el.Props {
			if !vdom.IsEventProp(k) {
				n.attrs[k] = vdom.PropString(val)
			}
		}
	}
}

func (e *fakeEnv) MountAttrsAfter(n *fakeNode, v vdom.Node, state string) {
	e.calls = append(e.calls, "mount-after "+n.label())
}

func (e *fakeEnv) UpdateAttrsBefore(n *fakeNode, next, prev vdom.Node, state string) {
	e.calls = append(e.calls, "update-before "+n.label())
	switch v := next.(type) {
	case *vdom.Leaf:
		n.text = v.Text
	case *vdom.Element:
		n.attrs = map[string]string{}
		for k, val := range v.Props {
			if !vdom.IsEventProp(k) {
				n.attrs[k] = vdom.PropString(val)
			}
		}
	}
}

func (e *fakeEnv) UpdateAttrsAfter(n *fakeNode, next, prev vdom.Node, state string) {
	e.calls = append(e.calls, "update-after "+n.label())
}

func (e *fakeEnv) UnmountAttrsBefore(n *fakeNode, v vdom.Node, state string) {
	e.calls = append(e.calls, "unmount-before "+n.label())
}

func (e *fakeEnv) UnmountAttrsAfter(n *fakeNode, v vdom.Node, state string) {
	e.calls = append(e.calls, "unmount-after "+n.label())
}

func (e *fakeEnv) InsertBefore(parent, node, ref *fakeNode) {
	where := "end"
	if ref != nil {
		where = ref.label()
	}
	e.calls = append(e.calls, "insert "+node.label()+" before "+where)

	if old := node.parent; old != nil {
		i := old.indexOf(node)
		old.children = append(old.children[:i], old.children[i+1:]...)
	}
	node.parent = parent
	if ref == nil {
		parent.children = append(parent.children, node)
		return
	}
	i := parent.indexOf(ref)
	if i < 0 {
		panic("fakeEnv: reference node is not a child of parent")
	}
	parent.children = append(parent.children[:i], append([]*fakeNode{node}, parent.children[i:]...)...)
}

func (e *fakeEnv) RemoveChild(parent, child *fakeNode) {
	e.calls = append(e.calls, "remove "+child.label())
	e.removed = append(e.removed, child.label())
	i := parent.indexOf(child)
	if i < 0 {
		panic("fakeEnv: RemoveChild of a non-child")
	}
	parent.children = append(parent.children[:i], parent.children[i+1:]...)
	child.parent = nil
}

func (e *fakeEnv) ParentNode(n *fakeNode) *fakeNode {
	e.queries++
	return n.parent
}

func (e *fakeEnv) NextSibling(n *fakeNode) *fakeNode {
	e.queries++
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i+1 < len(n.parent.children) {
		return n.parent.children[i+1]
	}
	return nil
}
