package reconcile

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

var (
	// ErrInvalidNode matches vnodes that fit none of the five variants.
	ErrInvalidNode = vdom.ErrInvalidNode

	// ErrStaleRef matches operations on a Ref that was unmounted or replaced.
	ErrStaleRef = errors.New(errors.CodeStaleRef)

	// ErrDetached matches list or replacement updates whose anchor node has
	// no parent in the environment.
	ErrDetached = errors.New(errors.CodeDetached)
)

func staleRef(ref Ref) error {
	return errors.New(errors.CodeStaleRef).WithDetailf("ref %s is not live", ref)
}

func detached(op string) error {
	return errors.New(errors.CodeDetached).WithDetailf("%s: last native node has no parent", op)
}
