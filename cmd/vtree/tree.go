package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/oplog"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/sched"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// maxTurns bounds Flush in the interactive commands.
const maxTurns = 100

// tree wires a reconciler to an in-memory document through an op recorder.
type tree struct {
	logger   *slog.Logger
	registry *prometheus.Registry
	sched    *sched.Scheduler
	doc      *dom.Document
	rec      *oplog.Recorder[*dom.Node, string]
	r        *reconcile.Reconciler[*dom.Node, string]
	root     *reconcile.Root[*dom.Node, string]
}

func newTree(cfg *config.Config, logger *slog.Logger) *tree {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	taskPanics := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: cfg.Metrics.Namespace,
		Subsystem: "sched",
		Name:      "task_panics_total",
		Help:      "Scheduled tasks that panicked",
	})
	registry.MustRegister(taskPanics)

	s := sched.New(
		sched.WithLogger(logger.With("component", "sched")),
		sched.WithPanicHandler(func(any) { taskPanics.Inc() }),
	)
	doc := dom.NewDocument()
	rec := oplog.New[*dom.Node, string](
		dom.NewEnv(dom.WithLogger(logger.With("component", "dom"))),
		oplog.WithCapacity[*dom.Node](cfg.Oplog.Capacity),
	)
	metrics := reconcile.NewMetrics(
		reconcile.WithNamespace(cfg.Metrics.Namespace),
		reconcile.WithRegistry(registry),
	)
	r := reconcile.New[*dom.Node, string](rec,
		reconcile.WithScheduler(s),
		reconcile.WithLogger(logger.With("component", "reconcile")),
		reconcile.WithMetrics(metrics),
	)

	return &tree{
		logger:   logger,
		registry: registry,
		sched:    s,
		doc:      doc,
		rec:      rec,
		r:        r,
		root:     r.NewRoot(doc.Root(), "", nil),
	}
}

// render mounts or updates the root and runs the turns it queued.
func (t *tree) render(ctx context.Context, v vdom.Node) error {
	if err := t.root.Render(ctx, v); err != nil {
		return err
	}
	t.sched.Flush(maxTurns)
	return nil
}

// step runs fn, flushes the scheduler and returns the op counts recorded in
// between.
func (t *tree) step(fn func()) map[oplog.Kind]int {
	t.rec.Reset()
	fn()
	t.sched.Flush(maxTurns)
	return t.rec.Counts()
}

// formatCounts prints non-zero counts in op order.
func formatCounts(counts map[oplog.Kind]int) string {
	var parts []string
	for _, k := range oplog.Kinds {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
