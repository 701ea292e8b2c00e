package reconcile

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// RefKind discriminates the three Ref shapes.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefItem
	RefList
	RefComponent
)

// String returns the string representation of the RefKind.
func (k RefKind) String() string {
	switch k {
	case RefItem:
		return "item"
	case RefList:
		return "list"
	case RefComponent:
		return "component"
	default:
		return "none"
	}
}

// Ref is a handle to a mounted subtree. The zero Ref refers to nothing.
type Ref struct {
	idx uint32
	gen uint32
}

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool { return r.gen == 0 }

// String implements fmt.Stringer.
func (r Ref) String() string {
	if r.IsZero() {
		return "ref(none)"
	}
	return fmt.Sprintf("ref(%d@%d)", r.idx, r.gen)
}

// refNode is one arena slot. Item fields are used for Empty, Leaf and
// Element vnodes, items for lists, and the component fields for component
// vnodes.
type refNode[N comparable, S any] struct {
	gen  uint32
	kind RefKind

	vnode vdom.Node
	state S

	native N
	child  Ref

	items []Ref

	inst     *instance
	render   vdom.Render
	rendered Ref
}

// arena owns every refNode. Slots are individually allocated so pointers
// stay valid while the slot table grows; released slots are reused with a
// bumped generation.
type arena[N comparable, S any] struct {
	slots []*refNode[N, S]
	free  []uint32
	live  int
}

func (a *arena[N, S]) alloc(kind RefKind) (Ref, *refNode[N, S]) {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, &refNode[N, S]{})
	}
	node := a.slots[idx]
	node.gen++
	if node.gen == 0 {
		node.gen = 1
	}
	node.kind = kind
	a.live++
	return Ref{idx: idx, gen: node.gen}, node
}

func (a *arena[N, S]) get(r Ref) *refNode[N, S] {
	if r.IsZero() || int(r.idx) >= len(a.slots) {
		return nil
	}
	node := a.slots[r.idx]
	if node.gen != r.gen || node.kind == RefNone {
		return nil
	}
	return node
}

func (a *arena[N, S]) release(r Ref) {
	node := a.get(r)
	if node == nil {
		return
	}
	gen := node.gen
	*node = refNode[N, S]{gen: gen}
	a.free = append(a.free, r.idx)
	a.live--
}
