package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

func Div(args ...any) *Element      { return El("div", args...) }
func Span(args ...any) *Element     { return El("span", args...) }
func P(args ...any) *Element        { return El("p", args...) }
func H1(args ...any) *Element       { return El("h1", args...) }
func H2(args ...any) *Element       { return El("h2", args...) }
func Ul(args ...any) *Element       { return El("ul", args...) }
func Ol(args ...any) *Element       { return El("ol", args...) }
func Li(args ...any) *Element       { return El("li", args...) }
func Button(args ...any) *Element   { return El("button", args...) }
func Input(args ...any) *Element    { return El("input", args...) }
func Label(args ...any) *Element    { return El("label", args...) }
func Select(args ...any) *Element   { return El("select", args...) }
func Option(args ...any) *Element   { return El("option", args...) }
func Section(args ...any) *Element  { return El("section", args...) }
func Header(args ...any) *Element   { return El("header", args...) }
func Footer(args ...any) *Element   { return El("footer", args...) }
func Strong(args ...any) *Element   { return El("strong", args...) }
func Svg(args ...any) *Element      { return El("svg", args...) }
func Circle(args ...any) *Element   { return El("circle", args...) }
func Textarea(args ...any) *Element { return El("textarea", args...) }
