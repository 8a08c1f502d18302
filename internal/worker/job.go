package worker

import (
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

const reportMaxAttempts = 3

// RegistrationReportArgs are the arguments of the job reporting how many
// users registered during the last week. The job carries no payload; it
// reads live data when it runs.
type RegistrationReportArgs struct{}

// Kind returns the River job kind used to register and dispatch the report worker.
func (RegistrationReportArgs) Kind() string { return "RegistrationReport" }

// InsertOpts keeps at most one report queued or running at a time.
func (RegistrationReportArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: reportMaxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
