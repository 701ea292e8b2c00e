package dom

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Env renders vdom trees into Nodes. Its state type is the namespace URI of
// the enclosing element.
type Env struct {
	logger *slog.Logger
}

var _ reconcile.Env[*Node, string] = (*Env)(nil)

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithLogger sets the logger used for rejected tree mutations.
func WithLogger(logger *slog.Logger) EnvOption {
	return func(e *Env) {
		e.logger = logger
	}
}

// NewEnv returns a DOM environment.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default().With("component", "dom")
	}
	return e
}

// special props are applied after children and never become attributes.
var special = map[string]struct{}{
	"ref":       {},
	"key":       {},
	"children":  {},
	"selected":  {},
	"checked":   {},
	"value":     {},
	"innerHTML": {},
}

func isSpecial(key string) bool {
	_, ok := special[key]
	return ok
}

// CreateNode implements reconcile.Env.
func (e *Env) CreateNode(v vdom.Node, ns string) (*Node, string) {
	switch vdom.KindOf(v) {
	case vdom.KindEmpty:
		return CreateComment(""), ns
	case vdom.KindLeaf:
		return CreateTextNode(v.(*vdom.Leaf).Text), ns
	case vdom.KindElement:
		el := v.(*vdom.Element)
		next := elementNamespace(el, ns)
		if next == "" {
			return CreateElement(el.Tag), next
		}
		return CreateElementNS(next, el.Tag), next
	}
	panic("dom: CreateNode called with a " + vdom.KindOf(v).String() + " vnode")
}

func elementNamespace(el *vdom.Element, inherited string) string {
	if ns := el.Props.String("xmlns"); ns != "" {
		return ns
	}
	if ns, ok := tagNamespaces[el.Tag]; ok {
		return ns
	}
	return inherited
}

// MountAttrsBefore implements reconcile.Env.
func (e *Env) MountAttrsBefore(n *Node, v vdom.Node, ns string) {
	el, ok := v.(*vdom.Element)
	if !ok {
		return
	}
	for key, val := range el.Props {
		if isSpecial(key) {
			continue
		}
		e.setProp(n, key, val)
	}
}

// MountAttrsAfter implements reconcile.Env.
func (e *Env) MountAttrsAfter(n *Node, v vdom.Node, ns string) {
	el, ok := v.(*vdom.Element)
	if !ok {
		return
	}
	for key, val := range el.Props {
		if isSpecial(key) {
			mountSpecial(n, key, val)
		}
	}
}

// UpdateAttrsBefore implements reconcile.Env. Leaf updates replace the
// text of the node.
func (e *Env) UpdateAttrsBefore(n *Node, next, prev vdom.Node, ns string) {
	if leaf, ok := next.(*vdom.Leaf); ok {
		n.SetData(leaf.Text)
		return
	}
	nel, ok1 := next.(*vdom.Element)
	pel, ok2 := prev.(*vdom.Element)
	if !ok1 || !ok2 {
		return
	}
	for key, nv := range nel.Props {
		if isSpecial(key) {
			continue
		}
		if ov, had := pel.Props[key]; had && sameValue(nv, ov) {
			continue
		}
		e.setProp(n, key, nv)
	}
	for key := range pel.Props {
		if isSpecial(key) {
			continue
		}
		if _, kept := nel.Props[key]; kept {
			continue
		}
		e.clearProp(n, key)
	}
}

// UpdateAttrsAfter implements reconcile.Env. Special props are refreshed on
// every update so live properties such as value follow the vnode.
func (e *Env) UpdateAttrsAfter(n *Node, next, prev vdom.Node, ns string) {
	nel, ok1 := next.(*vdom.Element)
	pel, ok2 := prev.(*vdom.Element)
	if !ok1 || !ok2 {
		return
	}
	for key, nv := range nel.Props {
		if isSpecial(key) {
			updateSpecial(n, key, nv, pel.Props[key])
		}
	}
	for key, ov := range pel.Props {
		if _, kept := nel.Props[key]; kept || !isSpecial(key) {
			continue
		}
		updateSpecial(n, key, nil, ov)
	}
}

// UnmountAttrsBefore implements reconcile.Env. It clears the element's ref.
func (e *Env) UnmountAttrsBefore(n *Node, v vdom.Node, ns string) {
	if el, ok := v.(*vdom.Element); ok {
		if r, ok := el.Props["ref"]; ok {
			detachRef(n, r)
		}
	}
}

// UnmountAttrsAfter implements reconcile.Env.
func (e *Env) UnmountAttrsAfter(n *Node, v vdom.Node, ns string) {}

// InsertBefore implements reconcile.Env.
func (e *Env) InsertBefore(parent, node, ref *Node) {
	if err := parent.InsertBefore(node, ref); err != nil {
		e.logger.Error("insert rejected", "parent", parent.String(), "node", node.String(), "error", err)
	}
}

// RemoveChild implements reconcile.Env.
func (e *Env) RemoveChild(parent, child *Node) {
	if err := parent.RemoveChild(child); err != nil {
		e.logger.Error("remove rejected", "parent", parent.String(), "node", child.String(), "error", err)
	}
}

// ParentNode implements reconcile.Env.
func (e *Env) ParentNode(n *Node) *Node { return n.Parent() }

// NextSibling implements reconcile.Env.
func (e *Env) NextSibling(n *Node) *Node { return n.NextSibling() }

func (e *Env) setProp(n *Node, key string, val any) {
	if vdom.IsEventProp(key) {
		n.setHandler(strings.ToLower(key), val)
		return
	}
	switch v := val.(type) {
	case nil:
		n.RemoveAttr(key)
	case bool:
		if v {
			n.SetAttr(key, "")
		} else {
			n.RemoveAttr(key)
		}
	default:
		n.SetAttr(key, vdom.PropString(v))
	}
}

func (e *Env) clearProp(n *Node, key string) {
	if vdom.IsEventProp(key) {
		n.setHandler(strings.ToLower(key), nil)
		return
	}
	n.RemoveAttr(key)
}

func mountSpecial(n *Node, key string, val any) {
	switch key {
	case "ref":
		attachRef(n, val)
	case "key", "children":
	default:
		n.SetProp(key, val)
	}
}

func updateSpecial(n *Node, key string, next, prev any) {
	switch key {
	case "ref":
		if sameValue(next, prev) {
			return
		}
		detachRef(n, prev)
		attachRef(n, next)
	case "key", "children":
	default:
		n.SetProp(key, next)
	}
}
