package vdom

// Kind is the node variant discriminator.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindEmpty
	KindLeaf
	KindElement
	KindList
	KindComponent
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindLeaf:
		return "leaf"
	case KindElement:
		return "element"
	case KindList:
		return "list"
	case KindComponent:
		return "component"
	default:
		return "invalid"
	}
}

// Node is a virtual node. It is implemented only by the five variants in
// this package.
type Node interface {
	node()
}

// Empty is the absence of content.
type Empty struct{}

// Leaf is a primitive text value. Numbers are stored in formatted form.
type Leaf struct {
	Text string
}

// Element describes a native environment node.
type Element struct {
	Tag      string // Element tag name (e.g., "div")
	Props    Props  // Attributes, event handlers and special props
	Children Node   // Optional single child; use a *List for several
	Key      string // Reconciliation key
}

// List is an ordered sequence of nodes without a wrapping element.
type List struct {
	Items []Node
}

// Component is a stateful node rendered by its factory.
type Component struct {
	Type  *ComponentType
	Props Props
	Key   string
}

// invalidNode carries a constructor argument that From could not classify
// so that mounting it fails instead of the value disappearing.
type invalidNode struct {
	value any
}

func (*invalidNode) node() {}

func (*Empty) node()     {}
func (*Leaf) node()      {}
func (*Element) node()   {}
func (*List) node()      {}
func (*Component) node() {}

// Keyed returns a copy of the component node with the given key.
func (c *Component) Keyed(key string) *Component {
	cp := *c
	cp.Key = key
	return &cp
}

// KindOf classifies n. A nil Node, an *Empty and a *List without items are
// Empty. Malformed values classify as KindInvalid.
func KindOf(n Node) Kind {
	switch v := n.(type) {
	case nil, *Empty:
		return KindEmpty
	case *Leaf:
		if v == nil {
			return KindInvalid
		}
		return KindLeaf
	case *Element:
		if v == nil || v.Tag == "" {
			return KindInvalid
		}
		return KindElement
	case *List:
		if v == nil || len(v.Items) == 0 {
			return KindEmpty
		}
		return KindList
	case *Component:
		if v == nil || v.Type == nil || v.Type.setup == nil {
			return KindInvalid
		}
		return KindComponent
	default:
		return KindInvalid
	}
}

// IsEmpty reports whether n renders nothing.
func IsEmpty(n Node) bool { return KindOf(n) == KindEmpty }

// IsLeaf reports whether n is a text or number value.
func IsLeaf(n Node) bool { return KindOf(n) == KindLeaf }

// IsElement reports whether n is a well-formed element.
func IsElement(n Node) bool { return KindOf(n) == KindElement }

// IsList reports whether n is a non-empty list.
func IsList(n Node) bool { return KindOf(n) == KindList }

// IsComponent reports whether n is a well-formed component node.
func IsComponent(n Node) bool { return KindOf(n) == KindComponent }

// MatchKey returns the (key, type) pair used to pair old and new list
// members. Elements report their tag, components their factory; every other
// variant reports an empty key and a nil type, so such members pair with
// each other.
func MatchKey(n Node) (key string, typ any) {
	switch v := n.(type) {
	case *Element:
		if v != nil {
			return v.Key, v.Tag
		}
	case *Component:
		if v != nil {
			return v.Key, v.Type
		}
	}
	return "", nil
}

// SameMatchKey reports whether a and b have equal (key, type) pairs.
func SameMatchKey(a, b Node) bool {
	ak, at := MatchKey(a)
	bk, bt := MatchKey(b)
	return ak == bk && at == bt
}

// SameType reports whether a and b are the same variant with the same tag
// or factory, ignoring keys.
func SameType(a, b Node) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb || ka == KindInvalid {
		return false
	}
	_, at := MatchKey(a)
	_, bt := MatchKey(b)
	return at == bt
}
