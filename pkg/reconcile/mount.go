package reconcile

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func (r *Reconciler[N, S]) mount(parent, before N, state S, v vdom.Node, vctx *vdom.Context) (Ref, error) {
	kind := vdom.KindOf(v)
	switch kind {
	case vdom.KindEmpty, vdom.KindLeaf:
		native, st := r.env.CreateNode(v, state)
		r.env.InsertBefore(parent, native, before)
		ref, n := r.refs.alloc(RefItem)
		n.vnode, n.native, n.state = v, native, st
		r.metrics.mounted(kind.String())
		return ref, nil

	case vdom.KindElement:
		return r.mountElement(parent, before, state, v.(*vdom.Element), vctx)

	case vdom.KindList:
		list := v.(*vdom.List)
		items := make([]Ref, 0, len(list.Items))
		for _, item := range list.Items {
			ref, err := r.mount(parent, before, state, item, vctx)
			if err != nil {
				return Ref{}, err
			}
			items = append(items, ref)
		}
		ref, n := r.refs.alloc(RefList)
		n.vnode, n.items, n.state = v, items, state
		r.metrics.mounted(kind.String())
		return ref, nil

	case vdom.KindComponent:
		return r.mountComponent(parent, before, state, v.(*vdom.Component), vctx)
	}
	return Ref{}, vdom.InvalidNodeError(v)
}

func (r *Reconciler[N, S]) mountElement(parent, before N, state S, el *vdom.Element, vctx *vdom.Context) (Ref, error) {
	native, st := r.env.CreateNode(el, state)
	r.env.InsertBefore(parent, native, before)
	r.env.MountAttrsBefore(native, el, st)

	var child Ref
	if el.Children != nil {
		var zero N
		var err error
		child, err = r.mount(native, zero, st, el.Children, vctx)
		if err != nil {
			return Ref{}, err
		}
	}

	r.env.MountAttrsAfter(native, el, st)

	ref, n := r.refs.alloc(RefItem)
	n.vnode, n.native, n.state, n.child = el, native, st, child
	r.metrics.mounted(vdom.KindElement.String())
	return ref, nil
}

func (r *Reconciler[N, S]) mountComponent(parent, before N, state S, c *vdom.Component, vctx *vdom.Context) (Ref, error) {
	inst := newInstance(c.Type.Name(), c.Props, vctx, r.sched)
	ref, n := r.refs.alloc(RefComponent)
	n.vnode, n.inst, n.state = c, inst, state
	inst.rerender = func() { r.rerender(ref) }

	render := c.Type.Setup(c.Props, inst)
	if render == nil {
		r.refs.release(ref)
		return Ref{}, errors.New(errors.CodeInvalidNode).
			WithDetailf("component %s returned a nil render function", c.Type)
	}
	n.render = render

	rendered := render(c.Props)
	r.fire(inst, vdom.EventMount)
	renderedRef, err := r.mount(parent, before, state, rendered, inst.ctx)
	if err != nil {
		r.refs.release(ref)
		return Ref{}, err
	}
	n.rendered = renderedRef
	r.fire(inst, vdom.EventMounted)

	r.metrics.mounted(vdom.KindComponent.String())
	return ref, nil
}
