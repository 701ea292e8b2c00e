package reconcile

import (
	"context"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Root binds a native container to the tree rendered into it. The first
// Render mounts; later Renders update the existing tree.
type Root[N comparable, S any] struct {
	r      *Reconciler[N, S]
	parent N
	state  S
	vctx   *vdom.Context
	ref    Ref
}

// NewRoot returns a Root rendering into parent. vctx may be nil.
func (r *Reconciler[N, S]) NewRoot(parent N, state S, vctx *vdom.Context) *Root[N, S] {
	return &Root[N, S]{r: r, parent: parent, state: state, vctx: vctx}
}

// Render mounts or updates the tree.
func (rt *Root[N, S]) Render(ctx context.Context, v vdom.Node) error {
	if rt.ref.IsZero() {
		var zero N
		ref, err := rt.r.Mount(ctx, rt.parent, zero, rt.state, v, rt.vctx)
		if err != nil {
			return err
		}
		rt.ref = ref
		return nil
	}
	ref, err := rt.r.Update(ctx, rt.ref, rt.state, v, rt.vctx)
	rt.ref = ref
	return err
}

// Unmount destroys the tree. Rendering again mounts a fresh tree.
func (rt *Root[N, S]) Unmount(ctx context.Context) error {
	if rt.ref.IsZero() {
		return nil
	}
	err := rt.r.Unmount(ctx, rt.ref)
	rt.ref = Ref{}
	return err
}

// Ref returns the Ref of the rendered tree, or the zero Ref.
func (rt *Root[N, S]) Ref() Ref {
	return rt.ref
}

// Mounted reports whether a tree is mounted.
func (rt *Root[N, S]) Mounted() bool {
	return !rt.ref.IsZero()
}
