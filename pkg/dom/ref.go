package dom

import "reflect"

// NodeRef receives the element it is attached to with the ref prop. Current
// is nil while the element is not mounted.
type NodeRef struct {
	Current *Node
}

func attachRef(n *Node, r any) {
	switch v := r.(type) {
	case *NodeRef:
		if v != nil {
			v.Current = n
		}
	case func(*Node):
		v(n)
	}
}

// detachRef clears r unless it has since been attached to another node.
func detachRef(n *Node, r any) {
	if v, ok := r.(*NodeRef); ok && v != nil && v.Current != n {
		return
	}
	attachRef(nil, r)
}

// sameValue compares prop values without panicking on uncomparable
// dynamic types. Funcs compare by code pointer.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}
