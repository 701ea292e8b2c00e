package dom

// Well-known namespace URIs.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
)

var tagNamespaces = map[string]string{
	"html": NamespaceHTML,
	"svg":  NamespaceSVG,
	"math": NamespaceMathML,
}

// Document owns a tree of nodes rooted at a document node.
type Document struct {
	root *Node
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{root: &Node{typ: DocumentNode}}
}

// Root returns the document node. Trees are usually mounted directly into it.
func (d *Document) Root() *Node {
	return d.root
}

// CreateElement returns a detached element without a namespace.
func CreateElement(tag string) *Node {
	return &Node{typ: ElementNode, tag: tag}
}

// CreateElementNS returns a detached element in namespace ns.
func CreateElementNS(ns, tag string) *Node {
	return &Node{typ: ElementNode, tag: tag, ns: ns}
}

// CreateTextNode returns a detached text node.
func CreateTextNode(data string) *Node {
	return &Node{typ: TextNode, data: data}
}

// CreateComment returns a detached comment node.
func CreateComment(data string) *Node {
	return &Node{typ: CommentNode, data: data}
}

// Find returns the first element in document order under n, n included,
// for which match returns true.
func Find(n *Node, match func(*Node) bool) *Node {
	if n == nil {
		return nil
	}
	if n.typ == ElementNode && match(n) {
		return n
	}
	for c := n.first; c != nil; c = c.next {
		if found := Find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// ByID returns the element under n whose id attribute is id.
func ByID(n *Node, id string) *Node {
	return Find(n, func(el *Node) bool {
		v, ok := el.Attr("id")
		return ok && v == id
	})
}

// ByTag returns the first element under n with the given tag.
func ByTag(n *Node, tag string) *Node {
	return Find(n, func(el *Node) bool { return el.tag == tag })
}
