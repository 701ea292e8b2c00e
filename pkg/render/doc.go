// Package render serialises dom trees.
//
// HTML writes a subtree as HTML5 with escaped text and attribute values,
// sorted attributes, void elements and comments. Outline draws the same
// subtree as an indented, styled tree for terminals:
//
//	html, err := render.HTMLString(doc.Root())
//	fmt.Println(render.Outline(doc.Root()))
//
// Live properties are rendered the way a browser would serialise them
// after the property was set: value and checked/selected show up as
// attributes, innerHTML replaces the children of an element that has none.
package render
