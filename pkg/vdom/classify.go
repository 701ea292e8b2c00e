package vdom

import (
	"fmt"
	"reflect"

	"github.com/vango-dev/vtree/internal/errors"
)

// ErrInvalidNode is the sentinel matched by errors.Is for every
// classification failure.
var ErrInvalidNode = errors.New(errors.CodeInvalidNode)

// InvalidNodeError builds a classification failure describing v.
func InvalidNodeError(v any) error {
	return errors.New(errors.CodeInvalidNode).
		WithDetailf("value %s matches none of Empty, Leaf, Element, List, Component", describe(v)).
		WithSuggestion("Build nodes with the vdom constructors (El, Text, Fragment, Comp)")
}

// From classifies a dynamic value:
//
//	nil, false, empty slice      → Empty
//	string, integer, float       → Leaf
//	[]any, []Node (non-empty)    → List (members classified recursively)
//	Node                         → itself, if well formed
//
// Any other value is an error matching ErrInvalidNode.
func From(v any) (Node, error) {
	switch val := v.(type) {
	case nil:
		return Nothing(), nil
	case bool:
		if !val {
			return Nothing(), nil
		}
		return nil, InvalidNodeError(v)
	case string:
		return Text(val), nil
	case int:
		return Num(val), nil
	case int8:
		return Num(val), nil
	case int16:
		return Num(val), nil
	case int32:
		return Num(val), nil
	case int64:
		return Num(val), nil
	case uint:
		return Num(val), nil
	case uint8:
		return Num(val), nil
	case uint16:
		return Num(val), nil
	case uint32:
		return Num(val), nil
	case uint64:
		return Num(val), nil
	case float32:
		return Num(val), nil
	case float64:
		return Num(val), nil
	case []Node:
		return fromSlice(len(val), func(i int) any { return val[i] })
	case []any:
		return fromSlice(len(val), func(i int) any { return val[i] })
	case Node:
		if KindOf(val) == KindInvalid {
			return nil, InvalidNodeError(v)
		}
		return val, nil
	}
	return nil, InvalidNodeError(v)
}

func fromSlice(n int, at func(int) any) (Node, error) {
	if n == 0 {
		return Nothing(), nil
	}
	items := make([]Node, n)
	for i := 0; i < n; i++ {
		item, err := From(at(i))
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return &List{Items: items}, nil
}

// Validate reports the first malformed node in the tree rooted at n.
// Component render output is not visited.
func Validate(n Node) error {
	switch KindOf(n) {
	case KindInvalid:
		return InvalidNodeError(n)
	case KindElement:
		if c := n.(*Element).Children; c != nil {
			return Validate(c)
		}
	case KindList:
		for _, item := range n.(*List).Items {
			if err := Validate(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func describe(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case *Element:
		if val == nil {
			return "(*Element)(nil)"
		}
		return "element with empty tag"
	case *Component:
		if val == nil {
			return "(*Component)(nil)"
		}
		return "component without factory"
	case *Leaf:
		return "(*Leaf)(nil)"
	case *invalidNode:
		return describe(val.value)
	}
	return fmt.Sprintf("of type %s", reflect.TypeOf(v))
}
