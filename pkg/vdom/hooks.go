package vdom

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Event names a component lifecycle event.
type Event uint8

const (
	EventMount Event = iota
	EventMounted
	EventUpdate
	EventUpdated
	EventUnmount
	EventUnmounted

	eventCount
)

// Events lists every lifecycle event in firing order.
var Events = []Event{EventMount, EventMounted, EventUpdate, EventUpdated, EventUnmount, EventUnmounted}

// String returns the lower-case event name.
func (e Event) String() string {
	switch e {
	case EventMount:
		return "mount"
	case EventMounted:
		return "mounted"
	case EventUpdate:
		return "update"
	case EventUpdated:
		return "updated"
	case EventUnmount:
		return "unmount"
	case EventUnmounted:
		return "unmounted"
	default:
		return fmt.Sprintf("event(%d)", uint8(e))
	}
}

// Hook is a lifecycle subscriber.
type Hook func()

// Unsubscribe removes a subscription. It reports whether the subscription
// was still registered.
type Unsubscribe func() bool

type subscription struct {
	id uint64
	fn Hook
}

// Hooks maps each lifecycle event to its subscribers in subscription order.
// The zero value is ready to use.
type Hooks struct {
	subs   [eventCount][]subscription
	nextID uint64
}

// On subscribes fn to ev. Subscribing the same function twice registers two
// independent subscriptions.
func (h *Hooks) On(ev Event, fn Hook) Unsubscribe {
	if ev >= eventCount || fn == nil {
		return func() bool { return false }
	}
	h.nextID++
	id := h.nextID
	h.subs[ev] = append(h.subs[ev], subscription{id: id, fn: fn})

	return func() bool {
		list := h.subs[ev]
		for i, s := range list {
			if s.id == id {
				h.subs[ev] = append(list[:i:i], list[i+1:]...)
				return true
			}
		}
		return false
	}
}

// Len returns the number of subscribers for ev.
func (h *Hooks) Len(ev Event) int {
	if ev >= eventCount {
		return 0
	}
	return len(h.subs[ev])
}

// Fire runs every subscriber of ev. A panicking subscriber is recovered and
// logged; the remaining subscribers still run. Fire returns the number of
// subscribers that panicked.
func (h *Hooks) Fire(ev Event, logger *slog.Logger) int {
	if ev >= eventCount || len(h.subs[ev]) == 0 {
		return 0
	}
	// Subscribers may unsubscribe while firing.
	snapshot := append([]subscription(nil), h.subs[ev]...)

	panics := 0
	for _, s := range snapshot {
		if !runHook(ev, s.fn, logger) {
			panics++
		}
	}
	return panics
}

// Clear drops every subscription.
func (h *Hooks) Clear() {
	for i := range h.subs {
		h.subs[i] = nil
	}
}

func runHook(ev Event, fn Hook, logger *slog.Logger) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if logger == nil {
				logger = slog.Default()
			}
			logger.Error("lifecycle hook panic",
				"event", ev.String(),
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
	return true
}
