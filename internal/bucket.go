package internal

import (
	"context"
	"os"

	"github.com/evergreen-ci/pail"
	"github.com/pkg/errors"
)

// CreateBucket returns a bucket backed by the local directory dir. Keys
// are file names relative to dir.
func CreateBucket(ctx context.Context, dir string) (pail.Bucket, error) {
	if dir == "" {
		return nil, errors.New("must specify a bucket directory")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating bucket directory '%s'", dir)
	}

	bucket, err := pail.NewLocalBucket(pail.LocalOptions{
		Path: dir,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating local filesystem backed bucket")
	}

	return bucket, nil
}
