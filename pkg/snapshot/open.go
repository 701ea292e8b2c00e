package snapshot

import (
	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
)

// Open returns the store selected by cfg.Snapshot.Backend.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Snapshot.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.SnapshotDir())
	case config.BackendS3:
		s3cfg := cfg.Snapshot.S3
		if s3cfg.Bucket == "" {
			return nil, errors.New(errors.CodeConfigInvalid).
				WithDetail("snapshot.s3.bucket is required for the s3 backend")
		}
		return NewS3Store(NewS3Client(s3cfg), s3cfg.Bucket, s3cfg.Prefix), nil
	}
	return nil, errors.New(errors.CodeConfigInvalid).
		WithDetailf("unknown snapshot backend %q", cfg.Snapshot.Backend)
}
