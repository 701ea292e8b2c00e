package vdom

// Render produces the vnode tree of a mounted component for the given props.
// It is invoked once at mount and once per re-render.
type Render func(props Props) Node

// Setup is a component factory. It runs once per mounted instance with the
// initial props and returns the render closure used from then on.
type Setup func(init Props, inst Instance) Render

// ComponentType identifies a component factory. Its pointer is the factory
// identity compared by the reconciler.
type ComponentType struct {
	name  string
	setup Setup
}

// Define returns a new component type wrapping setup.
func Define(name string, setup Setup) *ComponentType {
	return &ComponentType{name: name, setup: setup}
}

// Name returns the display name given to Define.
func (t *ComponentType) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Setup invokes the factory.
func (t *ComponentType) Setup(init Props, inst Instance) Render {
	return t.setup(init, inst)
}

// String implements fmt.Stringer.
func (t *ComponentType) String() string {
	return "<" + t.Name() + ">"
}

// Instance is the per-mounted-component surface handed to Setup.
type Instance interface {
	// Props returns the current props snapshot.
	Props() Props

	// Context returns the instance's context record. Lookups that miss
	// locally fall through to the parent component's context.
	Context() *Context

	// On subscribes fn to a lifecycle event.
	On(ev Event, fn Hook) Unsubscribe

	// Update marks the instance dirty and schedules one coalesced re-render.
	// A non-nil effect runs on the immediate queue before that re-render.
	Update(effect func())
}
