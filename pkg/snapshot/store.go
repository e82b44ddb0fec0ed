package snapshot

import (
	"context"
	"net/url"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
)

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put stores html under name and returns where it was written.
	Put(ctx context.Context, name string, html []byte) (location string, err error)
}

// Open returns the store for target: an s3://bucket/prefix URL or a
// directory path.
func Open(target string, cfg S3Config) (Store, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, errors.New(errors.CodeSnapshotTarget).WithDetail("The snapshot target is empty.")
	}
	if !strings.Contains(target, "://") {
		return NewFileStore(target)
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, errors.New(errors.CodeSnapshotTarget).Wrap(err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return nil, errors.New(errors.CodeSnapshotTarget).
			WithDetailf("%q is not an s3://bucket/prefix URL", target)
	}
	return NewS3Store(NewS3Client(cfg), u.Host, strings.TrimPrefix(u.Path, "/")), nil
}

// validName rejects names that would escape the store's directory or prefix.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.New(errors.CodeSnapshotWrite).WithDetailf("invalid snapshot name %q", name)
	}
	return nil
}

func fileName(name string) string {
	return name + ".html"
}
