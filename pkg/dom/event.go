package dom

import "strings"

// Event is passed to handlers installed from on* props.
type Event struct {
	// Type is the lower-case event name without the "on" prefix.
	Type string
	// Target is the node Dispatch was called on.
	Target *Node
	// Current is the node whose handler is running.
	Current *Node
	// Payload is the value given to Dispatch.
	Payload any

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Handler returns the handler installed for event name, e.g. "click" for
// an onClick prop.
func (n *Node) Handler(name string) any {
	return n.handlers[handlerKey(name)]
}

func (n *Node) setHandler(key string, fn any) {
	if fn == nil {
		delete(n.handlers, key)
		return
	}
	if n.handlers == nil {
		n.handlers = make(map[string]any)
	}
	n.handlers[key] = fn
}

// Dispatch delivers an event to n and bubbles it through its ancestors.
// Handlers may be func(), func(*Event) or func(any) receiving the payload.
// It returns the number of handlers invoked.
func (n *Node) Dispatch(name string, payload any) int {
	ev := &Event{Type: strings.ToLower(name), Target: n, Payload: payload}
	key := handlerKey(ev.Type)
	calls := 0
	for cur := n; cur != nil && !ev.stopped; cur = cur.parent {
		fn, ok := cur.handlers[key]
		if !ok {
			continue
		}
		ev.Current = cur
		switch h := fn.(type) {
		case func():
			h()
		case func(*Event):
			h(ev)
		case func(any):
			h(payload)
		default:
			continue
		}
		calls++
	}
	return calls
}

func handlerKey(name string) string {
	return "on" + strings.ToLower(name)
}
