package vdom

import "strings"

// Attr represents a single prop.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// A creates an arbitrary prop.
func A(key string, value any) Attr { return Attr{Key: key, Value: value} }

// Key sets the reconciliation key.
func Key(key string) Attr { return Attr{Key: "key", Value: key} }

// ID sets the id attribute.
func ID(id string) Attr { return A("id", id) }

// Class sets the class attribute.
func Class(classes ...string) Attr { return A("class", strings.Join(classes, " ")) }

// Style sets the style attribute.
func Style(style string) Attr { return A("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return A("data-"+key, value) }

// Href sets the href attribute.
func Href(url string) Attr { return A("href", url) }

// Type sets the type attribute.
func Type(t string) Attr { return A("type", t) }

// Name sets the name attribute.
func Name(n string) Attr { return A("name", n) }

// Placeholder sets the placeholder attribute.
func Placeholder(p string) Attr { return A("placeholder", p) }

// Disabled sets or clears the disabled attribute.
func Disabled(on bool) Attr { return A("disabled", on) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return A("hidden", true) }

// Xmlns sets the namespace for an element and its descendants.
func Xmlns(ns string) Attr { return A("xmlns", ns) }

// Value sets the live value property. Applied after children.
func Value(v any) Attr { return A("value", v) }

// Checked sets the live checked property. Applied after children.
func Checked(on bool) Attr { return A("checked", on) }

// Selected sets the live selected property. Applied after children.
func Selected(on bool) Attr { return A("selected", on) }

// InnerHTML replaces the element content with raw markup. Applied after children.
func InnerHTML(html string) Attr { return A("innerHTML", html) }

// Ref binds the native node to r once children are mounted. r is
// environment-defined, for example a *dom.NodeRef or a func(*dom.Node).
func Ref(r any) Attr { return A("ref", r) }

// On attaches an event handler. The prop name is "on" + event.
func On(event string, handler any) Attr { return A("on"+event, handler) }

// OnClick attaches a click handler.
func OnClick(handler any) Attr { return On("click", handler) }

// OnInput attaches an input handler.
func OnInput(handler any) Attr { return On("input", handler) }

// OnChange attaches a change handler.
func OnChange(handler any) Attr { return On("change", handler) }

// IsEventProp reports whether key names an event handler prop.
// Case-insensitive: onclick, onClick and ONCLICK all qualify.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}
