package tes3conv

import (
	"context"

	"github.com/evergreen-ci/pail"
	"github.com/julianedwards/tes3conv/internal"
	"github.com/pkg/errors"
)

// BucketSession opens the bucket that backups are copied into.
type BucketSession struct {
	internal.BucketSession
}

type localBucketSession struct{}

// NewLocalBucketSession returns a session whose buckets are local
// directories.
func NewLocalBucketSession() *BucketSession {
	return &BucketSession{
		BucketSession: &localBucketSession{},
	}
}

func (s *localBucketSession) Create(ctx context.Context, dir string) (pail.Bucket, error) {
	bucket, err := internal.CreateBucket(ctx, dir)
	if err != nil {
		return nil, errors.Wrap(err, "creating local backed Pail Bucket")
	}

	return bucket, nil
}
