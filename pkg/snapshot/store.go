package snapshot

import (
	"context"
	"regexp"

	"github.com/vango-dev/vtree/internal/errors"
)

// Store persists snapshots by name.
type Store interface {
	// Put stores data under name, replacing any previous snapshot.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the snapshot stored under name. A missing snapshot
	// yields an error matching ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Location describes where name is stored, for logs and CLI output.
	Location(name string) string
}

// ErrNotFound is matched by errors.Is for missing snapshots.
var ErrNotFound = errors.New(errors.CodeSnapshotMiss)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName reports whether name is usable as a snapshot name.
func ValidateName(name string) error {
	if len(name) > 200 || !validName.MatchString(name) {
		return errors.New(errors.CodeSnapshot).
			WithDetailf("invalid snapshot name %q", name).
			WithSuggestion("Use letters, digits, '.', '-' and '_' only")
	}
	return nil
}

func notFound(name string, err error) error {
	e := errors.New(errors.CodeSnapshotMiss).WithDetailf("no snapshot named %q", name)
	if err != nil {
		e = e.Wrap(err)
	}
	return e
}

func storageError(op, name string, err error) error {
	return errors.New(errors.CodeSnapshot).WithDetailf("%s %q", op, name).Wrap(err)
}
