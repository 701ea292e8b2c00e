// Package vdom defines the virtual node model consumed by the reconciler.
//
// A Node is one of exactly five variants:
//
//	*Empty      absence of content (a placeholder in environments that need one)
//	*Leaf       a primitive text or number value
//	*Element    a native node: tag, props, an optional single child Node, optional key
//	*List       an ordered sequence of Nodes without a wrapping element
//	*Component  a stateful factory with props and an optional key
//
// The Node interface is sealed, so well-typed callers cannot produce a sixth
// variant. KindOf still reports KindInvalid for malformed values (a nil
// *Element, an empty tag, a component without a factory), and From
// classifies dynamic values such as []any or int.
//
// # Element API
//
// Elements are created with variadic constructors, mirroring HTML:
//
//	Ul(Class("todos"),
//	    Fragment(
//	        Li(Key("a"), Text("first")),
//	        Li(Key("b"), Text("second")),
//	    ),
//	)
//
// An element with a single child stores that child directly; two or more
// children are wrapped in a *List.
//
// # Components
//
// Define registers a component factory. The returned *ComponentType is the
// factory identity: two Component nodes are the same component when their
// Type pointers are equal.
//
//	var Counter = vdom.Define("Counter", func(init vdom.Props, inst vdom.Instance) vdom.Render {
//	    n := 0
//	    return func(props vdom.Props) vdom.Node {
//	        return vdom.Button(vdom.OnClick(func() { inst.Update(func() { n++ }) }), vdom.Num(n))
//	    }
//	})
package vdom
