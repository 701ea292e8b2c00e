// Package reconcile implements the renderer-agnostic tree reconciler.
//
// A Reconciler drives an Env (the environment port implemented by a
// rendering backend) so that the environment's live tree matches a vdom
// description. Mount creates native nodes for a description and returns a
// Ref; Update diffs a new description against a Ref in place; Unmount
// destroys a Ref and every native node it owns.
//
// # Refs
//
// Refs are handles into an arena owned by the Reconciler. Each handle
// carries a generation, so a Ref that has been unmounted (or replaced during
// Update) is detected as stale instead of aliasing a reused slot. The shape
// of the Ref tree always mirrors the last applied vdom tree.
//
// # Components
//
// Each mounted Component node gets an Instance: a props snapshot, a context
// record that falls through to the parent component's context, a lifecycle
// hook registry, and Update, which schedules one coalesced re-render on the
// Reconciler's scheduler. Re-renders run when the scheduler turns:
//
//	r := reconcile.New[*dom.Node, string](dom.NewEnv(doc))
//	root := r.NewRoot(doc.Root(), "", nil)
//	if err := root.Render(ctx, vdom.Comp(App, nil)); err != nil { ... }
//	r.Scheduler().Flush(0)
//
// # Lists
//
// List members are paired by (key, type) with a first-found linear scan.
// Reused members are relocated to the list's anchor and updated; members
// without a partner are mounted; unpaired old members are unmounted in
// reverse order.
package reconcile
