package dom

import (
	"fmt"
	"sort"
	"strings"
)

// NodeType identifies the kind of a Node.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case DocumentNode:
		return "document"
	default:
		return fmt.Sprintf("NodeType(%d)", uint8(t))
	}
}

// Node is a node of a Document. Nodes are not safe for concurrent use.
type Node struct {
	typ  NodeType
	tag  string
	ns   string
	data string

	attrs    map[string]string
	props    map[string]any
	handlers map[string]any

	parent      *Node
	first, last *Node
	prev, next  *Node
}

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the tag name of an element, or "" for other nodes.
func (n *Node) Tag() string { return n.tag }

// Namespace returns the namespace URI of an element.
func (n *Node) Namespace() string { return n.ns }

// Data returns the character data of a text or comment node.
func (n *Node) Data() string { return n.data }

// SetData replaces the character data of a text or comment node.
func (n *Node) SetData(s string) {
	if n.typ == TextNode || n.typ == CommentNode {
		n.data = s
	}
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() *Node { return n.next }

// PrevSibling returns the preceding sibling, or nil.
func (n *Node) PrevSibling() *Node { return n.prev }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.first }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.last }

// Children returns the child nodes in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.first; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.first; c != nil; c = c.next {
		count++
	}
	return count
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// InsertBefore inserts child before ref, or appends it when ref is nil.
// A child that already has a parent is moved.
func (n *Node) InsertBefore(child, ref *Node) error {
	switch {
	case child == nil:
		return fmt.Errorf("dom: insert of nil node")
	case n.typ == TextNode || n.typ == CommentNode:
		return fmt.Errorf("dom: %s node cannot have children", n.typ)
	case child.typ == DocumentNode:
		return fmt.Errorf("dom: cannot insert a document node")
	case child.Contains(n):
		return fmt.Errorf("dom: inserting <%s> would create a cycle", child.tag)
	case ref != nil && ref.parent != n:
		return fmt.Errorf("dom: reference node is not a child of this node")
	case ref == child:
		return nil
	}

	if child.parent != nil {
		child.parent.unlink(child)
	}
	child.parent = n
	if ref == nil {
		child.prev = n.last
		if n.last != nil {
			n.last.next = child
		} else {
			n.first = child
		}
		n.last = child
		return nil
	}
	child.next = ref
	child.prev = ref.prev
	if ref.prev != nil {
		ref.prev.next = child
	} else {
		n.first = child
	}
	ref.prev = child
	return nil
}

// AppendChild appends child.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		return fmt.Errorf("dom: node is not a child of this node")
	}
	n.unlink(child)
	return nil
}

func (n *Node) unlink(child *Node) {
	if child.prev != nil {
		child.prev.next = child.next
	} else {
		n.first = child.next
	}
	if child.next != nil {
		child.next.prev = child.prev
	} else {
		n.last = child.prev
	}
	child.parent, child.prev, child.next = nil, nil, nil
}

// Attr returns the value of attribute name.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns the attribute names in sorted order.
func (n *Node) Attrs() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetAttr sets attribute name on an element.
func (n *Node) SetAttr(name, value string) {
	if n.typ != ElementNode {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// RemoveAttr removes attribute name.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// Prop returns a live property (value, checked, selected, innerHTML).
func (n *Node) Prop(name string) any {
	return n.props[name]
}

// SetProp sets a live property. A nil value clears it.
func (n *Node) SetProp(name string, v any) {
	if v == nil {
		delete(n.props, name)
		return
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = v
}

// TextContent returns the concatenated text of n and its descendants.
// Comments contribute nothing.
func (n *Node) TextContent() string {
	switch n.typ {
	case TextNode:
		return n.data
	case CommentNode:
		return ""
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for c := n.first; c != nil; c = c.next {
		switch c.typ {
		case TextNode:
			b.WriteString(c.data)
		case ElementNode:
			c.writeText(b)
		}
	}
}

// String returns a short description of the node for logs.
func (n *Node) String() string {
	switch n.typ {
	case ElementNode:
		return "<" + n.tag + ">"
	case TextNode:
		return fmt.Sprintf("%q", n.data)
	case CommentNode:
		return "<!--" + n.data + "-->"
	case DocumentNode:
		return "#document"
	}
	return "#invalid"
}
