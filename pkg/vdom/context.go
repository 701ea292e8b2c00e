package vdom

// Context is a per-instance record of inherited values. Lookups that miss
// locally fall through to the parent record. The parent is referenced, never
// copied or owned.
type Context struct {
	parent *Context
	values map[any]any
}

// NewContext returns an empty record whose lookups fall through to parent.
// parent may be nil.
func NewContext(parent *Context) *Context {
	return &Context{parent: parent}
}

// Parent returns the record lookups fall through to.
func (c *Context) Parent() *Context {
	if c == nil {
		return nil
	}
	return c.parent
}

// Set stores a value in this record only.
func (c *Context) Set(key, value any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

// Delete removes a local value, exposing the parent's value again.
func (c *Context) Delete(key any) {
	delete(c.values, key)
}

// Lookup returns the nearest value stored for key.
func (c *Context) Lookup(key any) (any, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if v, ok := ctx.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// HasOwn reports whether key is stored locally.
func (c *Context) HasOwn(key any) bool {
	if c == nil {
		return false
	}
	_, ok := c.values[key]
	return ok
}

// ContextKey is a typed context entry with a default value.
//
//	var Theme = vdom.NewContextKey("light")
//
//	Theme.Set(inst.Context(), "dark")
//	theme := Theme.Get(inst.Context())
type ContextKey[T any] struct {
	name string
	def  T
}

// NewContextKey creates a key. Every key is distinct, even with equal defaults.
func NewContextKey[T any](def T) *ContextKey[T] {
	return &ContextKey[T]{def: def}
}

// NewNamedContextKey creates a key with a name used in debugging output.
func NewNamedContextKey[T any](name string, def T) *ContextKey[T] {
	return &ContextKey[T]{name: name, def: def}
}

// String returns the key name.
func (k *ContextKey[T]) String() string { return k.name }

// Get returns the nearest value for k in ctx, or the default.
func (k *ContextKey[T]) Get(ctx *Context) T {
	if v, ok := ctx.Lookup(k); ok {
		if t, ok := v.(T); ok {
			return t
		}
	}
	return k.def
}

// Set stores v for k in ctx.
func (k *ContextKey[T]) Set(ctx *Context, v T) {
	ctx.Set(k, v)
}
