package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/vtree/pkg/dom"
)

// OutlineStyles styles the parts of an outline line.
type OutlineStyles struct {
	Branch  lipgloss.Style
	Tag     lipgloss.Style
	Attr    lipgloss.Style
	Text    lipgloss.Style
	Comment lipgloss.Style
}

// DefaultOutlineStyles returns the styles used by Outline.
func DefaultOutlineStyles() OutlineStyles {
	return OutlineStyles{
		Branch:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
		Attr:    lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Comment: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	}
}

// Outline draws n and its descendants as an indented tree.
func Outline(n *dom.Node) string {
	return OutlineWith(n, DefaultOutlineStyles())
}

// OutlineWith draws n with the given styles.
func OutlineWith(n *dom.Node, st OutlineStyles) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(label(n, st))
	b.WriteByte('\n')
	outlineChildren(&b, n, "", st)
	return strings.TrimSuffix(b.String(), "\n")
}

func outlineChildren(b *strings.Builder, n *dom.Node, prefix string, st OutlineStyles) {
	children := n.Children()
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		b.WriteString(st.Branch.Render(prefix + branch))
		b.WriteString(label(c, st))
		b.WriteByte('\n')
		outlineChildren(b, c, prefix+next, st)
	}
}

func label(n *dom.Node, st OutlineStyles) string {
	switch n.Type() {
	case dom.TextNode:
		return st.Text.Render(fmt.Sprintf("%q", n.Data()))
	case dom.CommentNode:
		return st.Comment.Render("<!--" + n.Data() + "-->")
	case dom.DocumentNode:
		return st.Tag.Render("#document")
	}
	var b strings.Builder
	b.WriteString(st.Tag.Render("<" + n.Tag()))
	for _, name := range n.Attrs() {
		v, _ := n.Attr(name)
		if v == "" {
			b.WriteString(" " + st.Attr.Render(name))
			continue
		}
		b.WriteString(" " + st.Attr.Render(name+"="+fmt.Sprintf("%q", v)))
	}
	b.WriteString(st.Tag.Render(">"))
	return b.String()
}
