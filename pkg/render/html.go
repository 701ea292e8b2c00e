package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Config configures HTML output.
type Config struct {
	// Pretty puts every node on its own line, indented by depth.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer writes dom trees as HTML.
type Renderer struct {
	config Config
}

// NewRenderer creates a Renderer.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// HTML writes n as compact HTML. A document node writes its children.
func HTML(w io.Writer, n *dom.Node) error {
	return NewRenderer(Config{}).Render(w, n)
}

// HTMLString returns n as compact HTML.
func HTMLString(n *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := HTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes n to w.
func (r *Renderer) Render(w io.Writer, n *dom.Node) error {
	if n == nil {
		return nil
	}
	bw := bufio.NewWriter(w)
	if n.Type() == dom.DocumentNode {
		for _, c := range n.Children() {
			r.node(bw, c, 0)
		}
	} else {
		r.node(bw, n, 0)
	}
	return bw.Flush()
}

// RenderString returns n as HTML.
func (r *Renderer) RenderString(n *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) node(w *bufio.Writer, n *dom.Node, depth int) {
	r.indent(w, depth)
	switch n.Type() {
	case dom.TextNode:
		w.WriteString(escapeHTML(n.Data()))
	case dom.CommentNode:
		w.WriteString("<!--" + escapeComment(n.Data()) + "-->")
	case dom.ElementNode:
		r.element(w, n, depth)
		return
	}
	r.newline(w)
}

func (r *Renderer) element(w *bufio.Writer, n *dom.Node, depth int) {
	tag := n.Tag()
	w.WriteByte('<')
	w.WriteString(tag)
	writeAttrs(w, n)
	w.WriteByte('>')

	if vdom.IsVoidElement(tag) && isHTML(n) {
		r.newline(w)
		return
	}

	children := n.Children()
	raw, hasRaw := n.Prop("innerHTML").(string)
	switch {
	case len(children) == 0 && hasRaw:
		w.WriteString(raw)
	case len(children) > 0:
		r.newline(w)
		for _, c := range children {
			r.node(w, c, depth+1)
		}
		r.indent(w, depth)
	}
	fmt.Fprintf(w, "</%s>", tag)
	r.newline(w)
}

func isHTML(n *dom.Node) bool {
	ns := n.Namespace()
	return ns == "" || ns == dom.NamespaceHTML
}

// writeAttrs writes attributes and the attribute form of live properties
// in sorted order.
func writeAttrs(w *bufio.Writer, n *dom.Node) {
	values := make(map[string]*string)
	for _, name := range n.Attrs() {
		v, _ := n.Attr(name)
		values[name] = &v
	}
	for _, name := range []string{"value", "checked", "selected"} {
		switch v := n.Prop(name).(type) {
		case nil:
		case bool:
			if v {
				values[name] = nil
			} else {
				delete(values, name)
			}
		default:
			s := vdom.PropString(v)
			values[name] = &s
		}
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w.WriteByte(' ')
		w.WriteString(name)
		if v := values[name]; v != nil && *v != "" {
			w.WriteString(`="`)
			w.WriteString(escapeAttr(*v))
			w.WriteByte('"')
		}
	}
}

func (r *Renderer) indent(w *bufio.Writer, depth int) {
	if !r.config.Pretty {
		return
	}
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

func (r *Renderer) newline(w *bufio.Writer) {
	if r.config.Pretty {
		w.WriteByte('\n')
	}
}
