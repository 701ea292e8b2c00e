package inspect

import (
	"context"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/oplog"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/sched"
)

// Source is what the inspector shows.
type Source interface {
	// HTML returns the current tree serialised as HTML.
	HTML(ctx context.Context) (string, error)

	// Outline returns the current tree as a plain-text outline.
	Outline(ctx context.Context) (string, error)

	// Ops returns recently recorded ops, oldest first.
	Ops() []oplog.Op

	// Subscribe streams ops recorded from now on until cancel is called.
	Subscribe(buffer int) (<-chan oplog.Op, func())
}

// Tree is a Source over a dom document driven by a scheduler loop. HTML and
// Outline block until the scheduler runs the read, so the loop must be
// running.
type Tree struct {
	Sched    *sched.Scheduler
	Doc      *dom.Document
	Recorder *oplog.Recorder[*dom.Node, string]
}

var _ Source = (*Tree)(nil)

// HTML implements Source.
func (t *Tree) HTML(ctx context.Context) (string, error) {
	return t.read(ctx, func() (string, error) {
		return render.HTMLString(t.Doc.Root())
	})
}

// Outline implements Source.
func (t *Tree) Outline(ctx context.Context) (string, error) {
	return t.read(ctx, func() (string, error) {
		return render.OutlineWith(t.Doc.Root(), plainOutline()), nil
	})
}

// Ops implements Source.
func (t *Tree) Ops() []oplog.Op {
	return t.Recorder.Ops()
}

// Subscribe implements Source.
func (t *Tree) Subscribe(buffer int) (<-chan oplog.Op, func()) {
	return t.Recorder.Subscribe(buffer)
}

func (t *Tree) read(ctx context.Context, fn func() (string, error)) (string, error) {
	type result struct {
		s   string
		err error
	}
	ch := make(chan result, 1)
	t.Sched.Post(func() {
		s, err := fn()
		ch <- result{s, err}
	})
	select {
	case r := <-ch:
		return r.s, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
