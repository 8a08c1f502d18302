package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs into the queue living next to the
// application tables. When called on a transactional handle the job becomes
// visible only once the transaction commits.
type JobStorage interface {
	// AddJob enqueues a job and reports whether it was actually inserted
	// (false when skipped as a duplicate of a unique job).
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
