package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/oplog"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	opsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func tuiCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Edit a todo list and watch the tree change",
		Long: `Open an interactive terminal view of a mounted todo list. Every key
applies an update and shows the resulting tree and environment ops.

Keys:
  a add   d delete   x toggle   r reverse   ↑/↓ select   q quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logs would corrupt the alternate screen.
			cfg, logger, err := g.load(io.Discard)
			if err != nil {
				return err
			}
			m, err := newTUIModel(cmd.Context(), newTree(cfg, logger), render.DefaultOutlineStyles())
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

type tuiModel struct {
	t        *tree
	store    *todoStore
	styles   render.OutlineStyles
	selected int
	added    int
	last     map[oplog.Kind]int
}

func newTUIModel(ctx context.Context, t *tree, styles render.OutlineStyles) (*tuiModel, error) {
	m := &tuiModel{
		t:      t,
		store:  newTodoStore("buy milk", "walk dog", "fix bike"),
		styles: styles,
	}
	var err error
	m.last = t.step(func() {
		err = t.root.Render(ctx, vdom.Comp(TodoList, vdom.Props{"store": m.store}))
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < m.store.Len()-1 {
			m.selected++
		}

	case "a":
		m.added++
		title := fmt.Sprintf("new todo %d", m.added)
		m.last = m.t.step(func() { m.store.Add(title) })

	case "d":
		if id, ok := m.selectedID(); ok {
			m.last = m.t.step(func() { m.store.Remove(id) })
		}

	case "x":
		if id, ok := m.selectedID(); ok {
			m.last = m.t.step(func() { m.store.Toggle(id) })
		}

	case "r":
		m.last = m.t.step(func() { m.store.Reverse() })
		m.selected = max(0, m.store.Len()-1-m.selected)
	}

	if m.selected >= m.store.Len() {
		m.selected = max(0, m.store.Len()-1)
	}
	return m, nil
}

func (m *tuiModel) selectedID() (string, bool) {
	if m.selected < 0 || m.selected >= m.store.Len() {
		return "", false
	}
	return m.store.At(m.selected).ID, true
}

func (m *tuiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("vtree"))
	b.WriteString("\n\n")

	for i := 0; i < m.store.Len(); i++ {
		t := m.store.At(i)
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", mark, t.ID, t.Title)
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(render.OutlineWith(m.t.doc.Root(), m.styles))
	b.WriteString("\n\n")
	b.WriteString(opsStyle.Render("ops: " + formatCounts(m.last)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a add • d delete • x toggle • r reverse • ↑/↓ select • q quit"))
	b.WriteString("\n")
	return b.String()
}
