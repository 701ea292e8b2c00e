package reconcile

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/sched"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Reconciler mounts, updates and unmounts vdom trees against an Env.
// It is not safe for concurrent use: every call, including scheduled
// re-renders, must happen on the goroutine that turns its Scheduler.
type Reconciler[N comparable, S any] struct {
	env     Env[N, S]
	refs    arena[N, S]
	sched   *sched.Scheduler
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

type options struct {
	sched   *sched.Scheduler
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures a Reconciler.
type Option func(*options)

// WithScheduler sets the scheduler instances queue their updates on.
// By default each Reconciler creates its own.
func WithScheduler(s *sched.Scheduler) Option {
	return func(o *options) {
		o.sched = s
	}
}

// WithLogger sets the logger for hook panics and failed re-renders.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer sets the OpenTelemetry tracer. Defaults to the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// New creates a Reconciler driving env.
func New[N comparable, S any](env Env[N, S], opts ...Option) *Reconciler[N, S] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default().With("component", "reconcile")
	}
	if o.sched == nil {
		o.sched = sched.New(sched.WithLogger(o.logger))
	}
	if o.tracer == nil {
		o.tracer = defaultTracer()
	}
	return &Reconciler[N, S]{
		env:     env,
		sched:   o.sched,
		logger:  o.logger,
		metrics: o.metrics,
		tracer:  o.tracer,
	}
}

// Scheduler returns the scheduler component updates are queued on.
func (r *Reconciler[N, S]) Scheduler() *sched.Scheduler {
	return r.sched
}

// Mount creates the native representation of v under parent, before the
// native node before (the zero N appends), and returns its Ref. vctx is the
// context inherited by top-level components and may be nil.
func (r *Reconciler[N, S]) Mount(ctx context.Context, parent, before N, state S, v vdom.Node, vctx *vdom.Context) (Ref, error) {
	start := time.Now()
	_, span := r.startSpan(ctx, "vtree.mount", attribute.String("vtree.kind", vdom.KindOf(v).String()))
	ref, err := r.mount(parent, before, state, v, vctx)
	endSpan(span, err)
	r.metrics.pass("mount", start, r.refs.live)
	return ref, err
}

// Update reconciles ref against v and returns the Ref now representing v.
// The returned Ref equals ref unless v was incompatible and the subtree was
// replaced, in which case ref is no longer live.
func (r *Reconciler[N, S]) Update(ctx context.Context, ref Ref, state S, v vdom.Node, vctx *vdom.Context) (Ref, error) {
	start := time.Now()
	_, span := r.startSpan(ctx, "vtree.update",
		attribute.String("vtree.kind", vdom.KindOf(v).String()),
		attribute.String("vtree.ref", ref.String()))
	next, err := r.update(ref, state, v, vctx)
	endSpan(span, err)
	r.metrics.pass("update", start, r.refs.live)
	return next, err
}

// Unmount destroys ref and every native node it owns.
func (r *Reconciler[N, S]) Unmount(ctx context.Context, ref Ref) error {
	start := time.Now()
	_, span := r.startSpan(ctx, "vtree.unmount", attribute.String("vtree.ref", ref.String()))
	var err error
	if r.refs.get(ref) == nil {
		err = staleRef(ref)
	} else {
		r.unmount(ref)
	}
	endSpan(span, err)
	r.metrics.pass("unmount", start, r.refs.live)
	return err
}

// Live returns the number of live Refs.
func (r *Reconciler[N, S]) Live() int {
	return r.refs.live
}

// Valid reports whether ref is live.
func (r *Reconciler[N, S]) Valid(ref Ref) bool {
	return r.refs.get(ref) != nil
}

// Kind returns the shape of ref, or RefNone if it is not live.
func (r *Reconciler[N, S]) Kind(ref Ref) RefKind {
	if n := r.refs.get(ref); n != nil {
		return n.kind
	}
	return RefNone
}

// VNode returns the vnode last applied to ref.
func (r *Reconciler[N, S]) VNode(ref Ref) vdom.Node {
	if n := r.refs.get(ref); n != nil {
		return n.vnode
	}
	return nil
}

// Native returns the native node of an item Ref.
func (r *Reconciler[N, S]) Native(ref Ref) (N, bool) {
	if n := r.refs.get(ref); n != nil && n.kind == RefItem {
		return n.native, true
	}
	var zero N
	return zero, false
}

// State returns the environment state stored on ref.
func (r *Reconciler[N, S]) State(ref Ref) S {
	if n := r.refs.get(ref); n != nil {
		return n.state
	}
	var zero S
	return zero
}

// Child returns the children Ref of an element item.
func (r *Reconciler[N, S]) Child(ref Ref) (Ref, bool) {
	if n := r.refs.get(ref); n != nil && n.kind == RefItem && !n.child.IsZero() {
		return n.child, true
	}
	return Ref{}, false
}

// Children returns the direct sub-Refs of ref: the children of an element,
// the members of a list or the rendered subtree of a component.
func (r *Reconciler[N, S]) Children(ref Ref) []Ref {
	n := r.refs.get(ref)
	if n == nil {
		return nil
	}
	switch n.kind {
	case RefItem:
		if !n.child.IsZero() {
			return []Ref{n.child}
		}
	case RefList:
		return append([]Ref(nil), n.items...)
	case RefComponent:
		return []Ref{n.rendered}
	}
	return nil
}

// Items returns the member Refs of a list Ref in order.
func (r *Reconciler[N, S]) Items(ref Ref) []Ref {
	if n := r.refs.get(ref); n != nil && n.kind == RefList {
		return append([]Ref(nil), n.items...)
	}
	return nil
}

// Rendered returns the Ref of a component's rendered subtree.
func (r *Reconciler[N, S]) Rendered(ref Ref) (Ref, bool) {
	if n := r.refs.get(ref); n != nil && n.kind == RefComponent {
		return n.rendered, true
	}
	return Ref{}, false
}

// Instance returns the instance of a component Ref.
func (r *Reconciler[N, S]) Instance(ref Ref) vdom.Instance {
	if n := r.refs.get(ref); n != nil && n.kind == RefComponent {
		return n.inst
	}
	return nil
}

// Nodes returns the top-level native nodes owned by ref in document order.
func (r *Reconciler[N, S]) Nodes(ref Ref) []N {
	var out []N
	r.collectNodes(ref, &out)
	return out
}

func (r *Reconciler[N, S]) collectNodes(ref Ref, out *[]N) {
	n := r.refs.get(ref)
	if n == nil {
		return
	}
	switch n.kind {
	case RefItem:
		*out = append(*out, n.native)
	case RefList:
		for _, item := range n.items {
			r.collectNodes(item, out)
		}
	case RefComponent:
		r.collectNodes(n.rendered, out)
	}
}

// lastNative returns the last native node owned by ref.
func (r *Reconciler[N, S]) lastNative(ref Ref) N {
	n := r.refs.get(ref)
	var zero N
	if n == nil {
		return zero
	}
	switch n.kind {
	case RefItem:
		return n.native
	case RefList:
		return r.lastNative(n.items[len(n.items)-1])
	case RefComponent:
		return r.lastNative(n.rendered)
	}
	return zero
}

func (r *Reconciler[N, S]) fire(inst *instance, ev vdom.Event) {
	panics := inst.hooks.Fire(ev, r.logger.With("instance", inst.name))
	r.metrics.hookPanicked(ev.String(), panics)
}
