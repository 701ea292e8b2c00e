package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/vtree/pkg/vdom"
)

func plainStyles() OutlineStyles {
	s := lipgloss.NewStyle()
	return OutlineStyles{Branch: s, Tag: s, Attr: s, Text: s, Comment: s}
}

func TestOutline(t *testing.T) {
	doc := mount(t, vdom.Div(vdom.ID("app"),
		vdom.Ul(vdom.Li("one"), vdom.Li(vdom.Disabled(true), "two")),
		nil,
		vdom.Nothing(),
	))

	got := OutlineWith(doc.Root(), plainStyles())
	want := strings.Join([]string{
		"#document",
		`└─ <div id="app">`,
		"   ├─ <ul>",
		"   │  ├─ <li>",
		`   │  │  └─ "one"`,
		"   │  └─ <li disabled>",
		`   │     └─ "two"`,
		"   └─ <!---->",
	}, "\n")
	if got != want {
		t.Errorf("Outline() =\n%s\nwant\n%s", got, want)
	}
}

func TestOutlineNil(t *testing.T) {
	if got := Outline(nil); got != "" {
		t.Errorf("Outline(nil) = %q", got)
	}
}
