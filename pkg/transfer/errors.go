package transfer

import "gitlab.com/tozd/go/errors"

var (
	// ErrSubmissionFailed means the mover rejected or never acknowledged the job
	ErrSubmissionFailed = errors.Base("job submission failed")
	// ErrTimedOut means the job did not reach a terminal state within the job timeout
	ErrTimedOut = errors.Base("job timed out")
	// ErrJobFailed means the mover reported the job as failed
	ErrJobFailed = errors.Base("job failed")
	// ErrPartialFailure means some but not all of the job's files transferred
	ErrPartialFailure = errors.Base("job partially failed")
	// ErrCancelled means the run was cancelled before the job finished
	ErrCancelled = errors.Base("job cancelled")
	// ErrAlreadySubmitted guards against submitting the same job twice
	ErrAlreadySubmitted = errors.Base("job already submitted")
)
