package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/snapshot"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type demoStep struct {
	name string
	run  func(s *todoStore)
}

// demoSteps is the scripted session. Each step runs in its own turn.
var demoSteps = []demoStep{
	{"reverse", func(s *todoStore) { s.Reverse() }},
	{"rename t2", func(s *todoStore) { s.Rename("t2", "walk the dog") }},
	{"add t4, remove t1", func(s *todoStore) {
		s.Add("call mom")
		s.Remove("t1")
	}},
	{"toggle t2 and t3, add t5 (one render)", func(s *todoStore) {
		s.Toggle("t2")
		s.Toggle("t3")
		s.Add("read book")
	}},
}

func demoCmd(g *globalFlags) *cobra.Command {
	var (
		pretty bool
		snap   string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted todo-list session",
		Long: `Mount a keyed todo list, apply a scripted series of updates and
print the rendered HTML and the environment ops of every turn.

Examples:
  vtree demo
  vtree demo --pretty
  vtree demo --snapshot demo.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			t := newTree(cfg, logger)
			html, err := runDemo(cmd.Context(), cmd.OutOrStdout(), t, render.Config{Pretty: pretty})
			if err != nil {
				return err
			}
			if snap == "" {
				return nil
			}

			store, err := snapshot.Open(cfg)
			if err != nil {
				return err
			}
			if err := store.Put(cmd.Context(), snap, []byte(html)); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Snapshot stored at %s", store.Location(snap))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the printed HTML")
	cmd.Flags().StringVar(&snap, "snapshot", "", "Store the final HTML under this snapshot name")

	return cmd
}

// runDemo mounts the todo list, runs demoSteps and returns the final HTML.
func runDemo(ctx context.Context, w io.Writer, t *tree, rc render.Config) (string, error) {
	store := newTodoStore("buy milk", "walk dog", "fix bike")
	renderer := render.NewRenderer(rc)

	report := func(n int, name string, counts string, renders int) (string, error) {
		html, err := renderer.RenderString(t.doc.Root())
		if err != nil {
			return "", err
		}
		fmt.Fprintf(w, "step %d: %s\n", n, name)
		fmt.Fprintf(w, "%s\n", html)
		info(w, "ops: %s", counts)
		info(w, "renders: %d", renders)
		fmt.Fprintln(w)
		return html, nil
	}

	counts := t.step(func() {
		if err := t.root.Render(ctx, vdom.Comp(TodoList, vdom.Props{"store": store})); err != nil {
			t.logger.Error("mount failed", "error", err)
		}
	})
	if !t.root.Mounted() {
		return "", fmt.Errorf("demo: todo list did not mount")
	}
	html, err := report(0, "mount", formatCounts(counts), store.renders)
	if err != nil {
		return "", err
	}

	for i, st := range demoSteps {
		before := store.renders
		counts := t.step(func() { st.run(store) })
		if html, err = report(i+1, st.name, formatCounts(counts), store.renders-before); err != nil {
			return "", err
		}
	}
	return html, nil
}
