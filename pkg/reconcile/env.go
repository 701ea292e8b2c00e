package reconcile

import "github.com/vango-dev/vtree/pkg/vdom"

// Env is the environment port a rendering backend implements.
//
// N is the native node handle. Its zero value means "no node": InsertBefore
// with a zero reference appends, and ParentNode/NextSibling return the zero
// value when there is none. S is opaque state threaded from parent to child
// (for example a namespace); the reconciler never interprets it.
//
// Attributes are applied in two passes around child mounting so that an
// adapter can set attributes children depend on first, and attributes that
// depend on children (such as a select's value) last. Leaf text changes are
// delivered through the update passes.
type Env[N comparable, S any] interface {
	// CreateNode creates the native node for an Empty, Leaf or Element
	// vnode and returns the state to propagate to its children.
	CreateNode(v vdom.Node, parent S) (N, S)

	MountAttrsBefore(n N, v vdom.Node, state S)
	MountAttrsAfter(n N, v vdom.Node, state S)
	UpdateAttrsBefore(n N, next, prev vdom.Node, state S)
	UpdateAttrsAfter(n N, next, prev vdom.Node, state S)
	UnmountAttrsBefore(n N, v vdom.Node, state S)
	UnmountAttrsAfter(n N, v vdom.Node, state S)

	// InsertBefore inserts (or moves) node under parent before ref.
	InsertBefore(parent, node, ref N)
	RemoveChild(parent, child N)
	ParentNode(n N) N
	NextSibling(n N) N
}
