// Package oplog records the calls a reconciler makes on its environment.
//
// A Recorder wraps any reconcile.Env, forwards every call unchanged and
// keeps a sequence-numbered window of recent operations, per-kind counters
// and a fan-out to live subscribers such as the inspector websocket.
package oplog

import (
	"fmt"
	"sync"
	"time"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Kind identifies an environment call.
type Kind uint8

const (
	OpCreate Kind = iota + 1
	OpMountBefore
	OpMountAfter
	OpUpdateBefore
	OpUpdateAfter
	OpUnmountBefore
	OpUnmountAfter
	OpInsert
	OpRemove
	OpParent
	OpNext
)

// Kinds lists every op kind.
var Kinds = []Kind{
	OpCreate, OpMountBefore, OpMountAfter, OpUpdateBefore, OpUpdateAfter,
	OpUnmountBefore, OpUnmountAfter, OpInsert, OpRemove, OpParent, OpNext,
}

var kindNames = map[Kind]string{
	OpCreate:        "create",
	OpMountBefore:   "mount-before",
	OpMountAfter:    "mount-after",
	OpUpdateBefore:  "update-before",
	OpUpdateAfter:   "update-after",
	OpUnmountBefore: "unmount-before",
	OpUnmountAfter:  "unmount-after",
	OpInsert:        "insert",
	OpRemove:        "remove",
	OpParent:        "parent",
	OpNext:          "next",
}

// String returns the op name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("oplog: unknown op kind %q", b)
}

// Mutates reports whether the op creates, moves or removes a native node.
func (k Kind) Mutates() bool {
	return k == OpCreate || k == OpInsert || k == OpRemove
}

// Op is one recorded call.
type Op struct {
	Seq    uint64    `json:"seq"`
	Kind   Kind      `json:"kind"`
	Node   string    `json:"node"`
	Target string    `json:"target,omitempty"`
	At     time.Time `json:"at"`
}

// String formats the op the way tests and the demo print it.
func (o Op) String() string {
	if o.Target != "" {
		return o.Kind.String() + " " + o.Node + " " + o.Target
	}
	return o.Kind.String() + " " + o.Node
}

// Recorder is a reconcile.Env decorator. The wrapped environment is driven
// on the reconciler goroutine; the recorded state may be read from any
// goroutine.
type Recorder[N comparable, S any] struct {
	env      reconcile.Env[N, S]
	describe func(N) string
	queries  bool

	mu      sync.Mutex
	seq     uint64
	ring    []Op
	head    int
	count   int
	counts  map[Kind]int
	subs    map[int]chan Op
	nextSub int
	dropped uint64
}

var _ reconcile.Env[string, struct{}] = (*Recorder[string, struct{}])(nil)

// Option configures a Recorder.
type Option[N comparable] func(*options[N])

type options[N comparable] struct {
	capacity int
	describe func(N) string
	queries  bool
}

// WithCapacity sets how many recent ops are retained (default 1024).
func WithCapacity[N comparable](n int) Option[N] {
	return func(o *options[N]) {
		o.capacity = n
	}
}

// WithDescriber sets how native nodes are named in ops. Defaults to
// fmt.Sprint.
func WithDescriber[N comparable](fn func(N) string) Option[N] {
	return func(o *options[N]) {
		o.describe = fn
	}
}

// WithQueries records ParentNode and NextSibling calls. They are counted
// either way.
func WithQueries[N comparable](on bool) Option[N] {
	return func(o *options[N]) {
		o.queries = on
	}
}

// New wraps env.
func New[N comparable, S any](env reconcile.Env[N, S], opts ...Option[N]) *Recorder[N, S] {
	o := options[N]{capacity: 1024}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		o.capacity = 1024
	}
	if o.describe == nil {
		o.describe = func(n N) string { return fmt.Sprint(n) }
	}
	return &Recorder[N, S]{
		env:      env,
		describe: o.describe,
		ring:     make([]Op, o.capacity),
		counts:   make(map[Kind]int),
		subs:     make(map[int]chan Op),
		queries:  o.queries,
	}
}

func (r *Recorder[N, S]) record(kind Kind, node, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[kind]++
	if (kind == OpParent || kind == OpNext) && !r.queries {
		return
	}
	r.seq++
	op := Op{Seq: r.seq, Kind: kind, Node: node, Target: target, At: time.Now()}
	r.ring[r.head] = op
	r.head = (r.head + 1) % len(r.ring)
	if r.count < len(r.ring) {
		r.count++
	}
	for _, ch := range r.subs {
		select {
		case ch <- op:
		default:
			r.dropped++
		}
	}
}

// Ops returns the retained ops, oldest first.
func (r *Recorder[N, S]) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, 0, r.count)
	for i := 0; i < r.count; i++ {
		idx := (r.head - r.count + i + len(r.ring)) % len(r.ring)
		out = append(out, r.ring[idx])
	}
	return out
}

// Since returns the retained ops with a sequence number above seq.
func (r *Recorder[N, S]) Since(seq uint64) []Op {
	ops := r.Ops()
	for i, op := range ops {
		if op.Seq > seq {
			return ops[i:]
		}
	}
	return nil
}

// Counts returns the number of calls per kind since the last Reset.
func (r *Recorder[N, S]) Counts() map[Kind]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Kind]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Count returns the number of calls of kind since the last Reset.
func (r *Recorder[N, S]) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[kind]
}

// Seq returns the sequence number of the last recorded op.
func (r *Recorder[N, S]) Seq() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Dropped returns how many ops were not delivered to slow subscribers.
func (r *Recorder[N, S]) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Reset clears retained ops and counters. Sequence numbers keep growing.
func (r *Recorder[N, S]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head, r.count = 0, 0
	r.counts = make(map[Kind]int)
}

// Subscribe returns a channel receiving every op recorded from now on.
// Ops are dropped rather than blocking the reconciler when the channel
// buffer is full. cancel closes the channel.
func (r *Recorder[N, S]) Subscribe(buffer int) (<-chan Op, func()) {
	if buffer < 0 {
		buffer = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextSub
	r.nextSub++
	ch := make(chan Op, buffer)
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.subs, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (r *Recorder[N, S]) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// CreateNode implements reconcile.Env.
func (r *Recorder[N, S]) CreateNode(v vdom.Node, parent S) (N, S) {
	n, s := r.env.CreateNode(v, parent)
	r.record(OpCreate, r.describe(n), "")
	return n, s
}

// MountAttrsBefore implements reconcile.Env.
func (r *Recorder[N, S]) MountAttrsBefore(n N, v vdom.Node, state S) {
	r.env.MountAttrsBefore(n, v, state)
	r.record(OpMountBefore, r.describe(n), "")
}

// MountAttrsAfter implements reconcile.Env.
func (r *Recorder[N, S]) MountAttrsAfter(n N, v vdom.Node, state S) {
	r.env.MountAttrsAfter(n, v, state)
	r.record(OpMountAfter, r.describe(n), "")
}

// UpdateAttrsBefore implements reconcile.Env.
func (r *Recorder[N, S]) UpdateAttrsBefore(n N, next, prev vdom.Node, state S) {
	r.env.UpdateAttrsBefore(n, next, prev, state)
	r.record(OpUpdateBefore, r.describe(n), "")
}

// UpdateAttrsAfter implements reconcile.Env.
func (r *Recorder[N, S]) UpdateAttrsAfter(n N, next, prev vdom.Node, state S) {
	r.env.UpdateAttrsAfter(n, next, prev, state)
	r.record(OpUpdateAfter, r.describe(n), "")
}

// UnmountAttrsBefore implements reconcile.Env.
func (r *Recorder[N, S]) UnmountAttrsBefore(n N, v vdom.Node, state S) {
	r.env.UnmountAttrsBefore(n, v, state)
	r.record(OpUnmountBefore, r.describe(n), "")
}

// UnmountAttrsAfter implements reconcile.Env.
func (r *Recorder[N, S]) UnmountAttrsAfter(n N, v vdom.Node, state S) {
	r.env.UnmountAttrsAfter(n, v, state)
	r.record(OpUnmountAfter, r.describe(n), "")
}

// InsertBefore implements reconcile.Env.
func (r *Recorder[N, S]) InsertBefore(parent, node, ref N) {
	r.env.InsertBefore(parent, node, ref)
	target := "end"
	var zero N
	if ref != zero {
		target = "before " + r.describe(ref)
	}
	r.record(OpInsert, r.describe(node), target)
}

// RemoveChild implements reconcile.Env.
func (r *Recorder[N, S]) RemoveChild(parent, child N) {
	r.env.RemoveChild(parent, child)
	r.record(OpRemove, r.describe(child), "")
}

// ParentNode implements reconcile.Env.
func (r *Recorder[N, S]) ParentNode(n N) N {
	p := r.env.ParentNode(n)
	r.record(OpParent, r.describe(n), "")
	return p
}

// NextSibling implements reconcile.Env.
func (r *Recorder[N, S]) NextSibling(n N) N {
	next := r.env.NextSibling(n)
	r.record(OpNext, r.describe(n), "")
	return next
}
