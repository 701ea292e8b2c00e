// Package dom is an in-memory document tree and the reconcile.Env that
// renders vdom trees into it.
//
// The tree follows the browser DOM closely enough for the reconciler's
// needs: element, text, comment and document nodes linked as siblings,
// string attributes, a small set of live properties (value, checked,
// selected, innerHTML) and event handlers installed from on* props.
//
// # Usage
//
//	doc := dom.NewDocument()
//	r := reconcile.New[*dom.Node, string](dom.NewEnv())
//	root := r.NewRoot(doc.Root(), "", nil)
//	_ = root.Render(ctx, vdom.Button(vdom.OnClick(func() { clicked = true }), "Go"))
//	doc.Root().FirstChild().Dispatch("click", nil)
//
// # Namespaces
//
// The environment state threaded through the reconciler is the namespace
// URI of the enclosing element. An element takes its namespace from its
// xmlns prop, then from the well-known namespace of its tag (svg, math,
// html), and otherwise inherits it.
package dom
