package reconcile

import (
	"github.com/vango-dev/vtree/pkg/sched"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// instance is the state of one mounted component.
type instance struct {
	name  string
	props vdom.Props
	ctx   *vdom.Context
	hooks vdom.Hooks

	dirty     bool
	scheduled bool
	disposed  bool

	sched    *sched.Scheduler
	rerender func()
}

func newInstance(name string, props vdom.Props, parent *vdom.Context, s *sched.Scheduler) *instance {
	return &instance{
		name:  name,
		props: props,
		ctx:   vdom.NewContext(parent),
		sched: s,
	}
}

// Props implements vdom.Instance.
func (i *instance) Props() vdom.Props { return i.props }

// Context implements vdom.Instance.
func (i *instance) Context() *vdom.Context { return i.ctx }

// On implements vdom.Instance.
func (i *instance) On(ev vdom.Event, fn vdom.Hook) vdom.Unsubscribe {
	return i.hooks.On(ev, fn)
}

// Update implements vdom.Instance. Every call marks the instance dirty and
// queues its own effect; the re-render task is queued once per pending
// render and does nothing if the instance is clean by the time it runs.
// Calls after the instance is unmounted are ignored.
func (i *instance) Update(effect func()) {
	if i.disposed {
		return
	}
	i.dirty = true
	if effect != nil {
		i.sched.Immediate(effect)
	}
	if !i.scheduled {
		i.scheduled = true
		i.sched.Defer(i.flush)
	}
}

// Dirty reports whether a re-render is pending.
func (i *instance) Dirty() bool { return i.dirty }

func (i *instance) flush() {
	i.scheduled = false
	if !i.dirty || i.disposed {
		return
	}
	i.rerender()
	// Updates requested while rendering are absorbed by this pass.
	i.dirty = false
}

func (i *instance) dispose() {
	i.disposed = true
	i.dirty = false
	i.hooks.Clear()
}
