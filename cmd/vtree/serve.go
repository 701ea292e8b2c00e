package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/inspect"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		listen string
		tick   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a ticking clock behind the HTTP inspector",
		Long: `Mount a clock component that re-renders on every tick and serve
the live tree, its op stream and metrics over HTTP.

Examples:
  vtree serve
  vtree serve --listen=127.0.0.1:9090 --tick=250ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			interval := cfg.TickInterval()
			if tick > 0 {
				interval = tick
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			t := newTree(cfg, logger)
			c := &clock{}
			t.sched.Post(func() {
				if err := t.root.Render(ctx, vdom.Comp(Clock, vdom.Props{"clock": c})); err != nil {
					logger.Error("mount failed", "error", err)
				}
			})

			go t.sched.Run(ctx)
			go runTicker(ctx, t, c, interval)

			srv := inspect.New(inspect.Config{
				Addr:     cfg.Listen,
				Gatherer: t.registry,
				Logger:   logger.With("component", "inspect"),
				Buffer:   cfg.Oplog.Buffer,
			}, &inspect.Tree{Sched: t.sched, Doc: t.doc, Recorder: t.rec})

			success(cmd.OutOrStdout(), "Inspector on %s (tick %s)", cfg.Listen, interval)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (default from vtree.json)")
	cmd.Flags().DurationVar(&tick, "tick", 0, "Clock interval (default from vtree.json)")

	return cmd
}

// runTicker posts a clock tick to the scheduler every interval.
func runTicker(ctx context.Context, t *tree, c *clock, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			t.sched.Post(func() { c.Tick(now) })
		case <-ctx.Done():
			return
		}
	}
}
