package reconcile

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/vtree/pkg/vdom"
)

func (r *Reconciler[N, S]) update(ref Ref, state S, v vdom.Node, vctx *vdom.Context) (Ref, error) {
	n := r.refs.get(ref)
	if n == nil {
		return ref, staleRef(ref)
	}
	if n.vnode == v {
		return ref, nil
	}

	kind, prevKind := vdom.KindOf(v), vdom.KindOf(n.vnode)
	if kind == vdom.KindInvalid {
		return ref, vdom.InvalidNodeError(v)
	}

	switch {
	case kind == vdom.KindEmpty && prevKind == vdom.KindEmpty:
		n.vnode = v
		r.metrics.updated(kind.String())
		return ref, nil

	case kind == vdom.KindLeaf && prevKind == vdom.KindLeaf:
		r.env.UpdateAttrsBefore(n.native, v, n.vnode, n.state)
		r.env.UpdateAttrsAfter(n.native, v, n.vnode, n.state)
		n.vnode = v
		r.metrics.updated(kind.String())
		return ref, nil

	case kind == vdom.KindElement && prevKind == vdom.KindElement:
		next, prev := v.(*vdom.Element), n.vnode.(*vdom.Element)
		if next.Tag == prev.Tag && next.Key == prev.Key {
			return ref, r.updateElement(n, next, prev, vctx)
		}

	case kind == vdom.KindList && prevKind == vdom.KindList:
		return ref, r.updateList(n, state, v.(*vdom.List), vctx)

	case kind == vdom.KindComponent && prevKind == vdom.KindComponent:
		next, prev := v.(*vdom.Component), n.vnode.(*vdom.Component)
		if next.Type == prev.Type && next.Key == prev.Key {
			return ref, r.updateComponent(n, state, next)
		}
	}

	return r.replace(ref, state, v, vctx)
}

func (r *Reconciler[N, S]) updateElement(n *refNode[N, S], next, prev *vdom.Element, vctx *vdom.Context) error {
	r.env.UpdateAttrsBefore(n.native, next, prev, n.state)

	switch {
	case prev.Children == nil && next.Children != nil:
		var zero N
		child, err := r.mount(n.native, zero, n.state, next.Children, vctx)
		if err != nil {
			return err
		}
		n.child = child
	case prev.Children != nil && next.Children == nil:
		r.unmount(n.child)
		n.child = Ref{}
	case prev.Children != nil:
		child, err := r.update(n.child, n.state, next.Children, vctx)
		n.child = child
		if err != nil {
			return err
		}
	}

	r.env.UpdateAttrsAfter(n.native, next, prev, n.state)
	n.vnode = next
	r.metrics.updated(vdom.KindElement.String())
	return nil
}

// updateList pairs new members with old ones by (key, type). Every member is
// placed before the node that followed the old list, so members end up in
// new-list order.
func (r *Reconciler[N, S]) updateList(n *refNode[N, S], state S, next *vdom.List, vctx *vdom.Context) error {
	pool := append([]Ref(nil), n.items...)
	last := r.lastNative(pool[len(pool)-1])
	parent := r.env.ParentNode(last)
	var zero N
	if parent == zero {
		return detached("list update")
	}
	anchor := r.env.NextSibling(last)

	items := make([]Ref, 0, len(next.Items))
	for _, v := range next.Items {
		found := -1
		for i, old := range pool {
			if vdom.SameMatchKey(v, r.refs.get(old).vnode) {
				found = i
				break
			}
		}

		if found < 0 {
			ref, err := r.mount(parent, anchor, state, v, vctx)
			if err != nil {
				return err
			}
			items = append(items, ref)
			continue
		}

		old := pool[found]
		pool = append(pool[:found], pool[found+1:]...)
		r.updateIdx(old, parent, anchor)
		ref, err := r.update(old, state, v, vctx)
		if err != nil {
			return err
		}
		items = append(items, ref)
	}

	for i := len(pool) - 1; i >= 0; i-- {
		r.unmount(pool[i])
	}

	n.items = items
	n.vnode = next
	n.state = state
	r.metrics.updated(vdom.KindList.String())
	return nil
}

// updateComponent re-renders a component with new props from its parent.
// No lifecycle hooks fire on this path.
func (r *Reconciler[N, S]) updateComponent(n *refNode[N, S], state S, next *vdom.Component) error {
	n.inst.props = next.Props
	n.state = state
	rendered := n.render(next.Props)
	renderedRef, err := r.update(n.rendered, state, rendered, n.inst.ctx)
	n.rendered = renderedRef
	if err != nil {
		return err
	}
	n.vnode = next
	r.metrics.updated(vdom.KindComponent.String())
	return nil
}

// replace mounts v before the last native node of ref, then unmounts ref.
func (r *Reconciler[N, S]) replace(ref Ref, state S, v vdom.Node, vctx *vdom.Context) (Ref, error) {
	last := r.lastNative(ref)
	parent := r.env.ParentNode(last)
	var zero N
	if parent == zero {
		return ref, detached("replace")
	}
	next, err := r.mount(parent, last, state, v, vctx)
	if err != nil {
		return ref, err
	}
	r.unmount(ref)
	r.metrics.replaced()
	return next, nil
}

// updateIdx moves the native nodes of ref before anchor without remounting.
func (r *Reconciler[N, S]) updateIdx(ref Ref, parent, anchor N) {
	n := r.refs.get(ref)
	if n == nil {
		return
	}
	switch n.kind {
	case RefItem:
		r.env.InsertBefore(parent, n.native, anchor)
		r.metrics.moved()
	case RefList:
		for _, item := range n.items {
			r.updateIdx(item, parent, anchor)
		}
	case RefComponent:
		r.updateIdx(n.rendered, parent, anchor)
	}
}

// rerender is the scheduled re-render of a component instance: it renders
// with the current props, fires the update hooks, reconciles the output and
// fires the updated hooks.
func (r *Reconciler[N, S]) rerender(ref Ref) {
	n := r.refs.get(ref)
	if n == nil || n.inst.disposed {
		return
	}
	inst := n.inst
	start := time.Now()
	_, span := r.startSpan(context.Background(), "vtree.render",
		attribute.String("vtree.component", inst.name),
		attribute.String("vtree.ref", ref.String()))

	v := n.render(inst.props)
	r.fire(inst, vdom.EventUpdate)
	renderedRef, err := r.update(n.rendered, n.state, v, inst.ctx)
	n.rendered = renderedRef
	if err != nil {
		r.logger.Error("component re-render failed",
			"instance", inst.name,
			"ref", ref.String(),
			"error", err)
	} else {
		r.fire(inst, vdom.EventUpdated)
	}

	endSpan(span, err)
	r.metrics.rendered(err)
	r.metrics.pass("render", start, r.refs.live)
}
