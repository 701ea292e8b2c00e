package reconcile

import "github.com/vango-dev/vtree/pkg/vdom"

// unmount destroys ref: children before parents, list members last to
// first, component hooks around the rendered subtree.
func (r *Reconciler[N, S]) unmount(ref Ref) {
	n := r.refs.get(ref)
	if n == nil {
		return
	}

	switch n.kind {
	case RefItem:
		r.env.UnmountAttrsBefore(n.native, n.vnode, n.state)
		if !n.child.IsZero() {
			r.unmount(n.child)
		}
		r.env.UnmountAttrsAfter(n.native, n.vnode, n.state)
		var zero N
		if parent := r.env.ParentNode(n.native); parent != zero {
			r.env.RemoveChild(parent, n.native)
		} else {
			r.logger.Warn("unmounting detached node", "ref", ref.String())
		}
		r.metrics.unmounted(vdom.KindOf(n.vnode).String())

	case RefList:
		for i := len(n.items) - 1; i >= 0; i-- {
			r.unmount(n.items[i])
		}
		r.metrics.unmounted(vdom.KindList.String())

	case RefComponent:
		inst := n.inst
		r.fire(inst, vdom.EventUnmount)
		r.unmount(n.rendered)
		r.fire(inst, vdom.EventUnmounted)
		inst.dispose()
		r.metrics.unmounted(vdom.KindComponent.String())
	}

	r.refs.release(ref)
}
