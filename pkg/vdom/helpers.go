package vdom

import (
	"fmt"
	"strconv"
)

var empty = &Empty{}

// Nothing returns the shared Empty node.
func Nothing() *Empty {
	return empty
}

// Text creates a text leaf.
func Text(content string) *Leaf {
	return &Leaf{Text: content}
}

// Textf creates a formatted text leaf.
func Textf(format string, args ...any) *Leaf {
	return Text(fmt.Sprintf(format, args...))
}

// Number is the set of numeric types a Leaf can be created from.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Num creates a leaf holding a formatted number.
func Num[T Number](n T) *Leaf {
	switch v := any(n).(type) {
	case float32:
		return Text(strconv.FormatFloat(float64(v), 'g', -1, 32))
	case float64:
		return Text(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return Text(fmt.Sprint(n))
}

// Fragment groups nodes without a wrapper element. Arguments follow the same
// rules as element children; nil arguments are skipped.
func Fragment(children ...any) *List {
	return &List{Items: collectChildren(children)}
}

// Comp creates a component node.
func Comp(t *ComponentType, props Props) *Component {
	return &Component{Type: t, Props: props}
}

// El creates an element. Arguments can be: nil, Attr, []Attr, Node, []Node,
// string (a text leaf), a *ComponentType (rendered with no props) or any
// other value accepted by From. Values From rejects make the element fail
// to mount with ErrInvalidNode.
func El(tag string, args ...any) *Element {
	el := &Element{Tag: tag}
	var children []any

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			el.applyAttr(v)
		case []Attr:
			for _, a := range v {
				el.applyAttr(a)
			}
		default:
			children = append(children, v)
		}
	}

	items := collectChildren(children)
	switch len(items) {
	case 0:
	case 1:
		el.Children = items[0]
	default:
		el.Children = &List{Items: items}
	}
	return el
}

func (el *Element) applyAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		el.Key = PropString(a.Value)
		return
	}
	if el.Props == nil {
		el.Props = make(Props)
	}
	el.Props[a.Key] = a.Value
}

func collectChildren(args []any) []Node {
	items := make([]Node, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Node:
			items = append(items, v)
		case []Node:
			items = append(items, v...)
		case string:
			items = append(items, Text(v))
		case *ComponentType:
			items = append(items, Comp(v, nil))
		case []*Element:
			for _, e := range v {
				items = append(items, e)
			}
		case []*Component:
			for _, c := range v {
				items = append(items, c)
			}
		default:
			n, err := From(v)
			if err != nil {
				n = &invalidNode{value: v}
			}
			items = append(items, n)
		}
	}
	return items
}
