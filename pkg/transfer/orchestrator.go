// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transfer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📬 Result is the terminal outcome of one job
type Result struct {
	Job        *Job
	Status     status.Status
	Diagnostic string
	Files      []mover.FileState // per-file results, when the mover reports them
	Err        error
}

// Succeeded reports whether every file of the job arrived
func (r Result) Succeeded() bool {
	return r.Status == status.StatusSucceeded
}

// 🔧 Options configures an orchestrator
type Options struct {
	Client            mover.Client
	Tracker           *status.Tracker // optional progress observer
	PollInterval      time.Duration
	JobTimeout        time.Duration
	AbortTimeout      time.Duration
	MaxPollErrors     int // consecutive status query failures tolerated
	Concurrent        bool
	MaxConcurrentJobs int
}

// OptionsFromConfig fills orchestrator options from the transfer section
func OptionsFromConfig(client mover.Client, cfg config.TransferConfig) Options {
	return Options{
		Client:            client,
		PollInterval:      cfg.PollIntervalDuration(),
		JobTimeout:        cfg.JobTimeoutDuration(),
		AbortTimeout:      cfg.AbortTimeoutDuration(),
		MaxPollErrors:     cfg.PollErrorBudget(),
		Concurrent:        cfg.Concurrent,
		MaxConcurrentJobs: cfg.MaxConcurrentJobs,
	}
}

// 🚚 Orchestrator submits jobs to the mover and follows them to a terminal state
type Orchestrator struct {
	client  mover.Client
	tracker *status.Tracker
	opts    Options
}

// 🏭 NewOrchestrator validates options and fills defaults
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Client == nil {
		return nil, errors.Errorf("mover client is required")
	}
	if opts.PollInterval < 0 || opts.JobTimeout < 0 || opts.AbortTimeout < 0 {
		return nil, errors.Errorf("durations must not be negative")
	}
	if opts.MaxPollErrors < 0 {
		return nil, errors.Errorf("max poll errors must not be negative")
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = config.DefaultPollInterval
	}
	if opts.JobTimeout == 0 {
		opts.JobTimeout = config.DefaultJobTimeout
	}
	if opts.AbortTimeout == 0 {
		opts.AbortTimeout = config.DefaultAbortTimeout
	}
	if opts.MaxConcurrentJobs <= 0 {
		opts.MaxConcurrentJobs = config.DefaultMaxConcurrentJobs
	}
	return &Orchestrator{
		client:  opts.Client,
		tracker: opts.Tracker,
		opts:    opts,
	}, nil
}

// 🏃 Run submits and awaits every job. A failing job never stops the others;
// results are returned in job order.
func (o *Orchestrator) Run(ctx context.Context, jobs []*Job) []Result {
	runID := uuid.NewString()
	ctx = zerolog.Ctx(ctx).With().Str("run_id", runID).Logger().WithContext(ctx)
	zerolog.Ctx(ctx).Info().Int("jobs", len(jobs)).Bool("concurrent", o.opts.Concurrent).Msg("starting transfers")

	results := make([]Result, len(jobs))
	var done atomic.Int64
	finished := func() {
		n := done.Add(1)
		if o.tracker != nil {
			o.tracker.Finished(ctx, int(n), len(jobs))
		}
	}

	if !o.opts.Concurrent {
		for i, job := range jobs {
			results[i] = o.SubmitAndAwait(ctx, job)
			finished()
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(o.opts.MaxConcurrentJobs)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = o.SubmitAndAwait(ctx, job)
			finished()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// 📤 SubmitAndAwait submits a job exactly once and polls it until it finishes,
// times out, or ctx is cancelled
func (o *Orchestrator) SubmitAndAwait(ctx context.Context, job *Job) Result {
	logger := zerolog.Ctx(ctx).With().
		Str("source", job.Source.Name).
		Str("destination", job.Destination.Name).
		Str("project", job.ProjectCode).
		Logger()
	ctx = logger.WithContext(ctx)

	if job.ID != "" || !job.submitted.CompareAndSwap(false, true) {
		return Result{Job: job, Status: job.Status, Err: errors.Errorf("%w: %s", ErrAlreadySubmitted, job.ID)}
	}

	if err := ctx.Err(); err != nil {
		return o.finish(job, Result{Status: status.StatusCancelled, Err: errors.Errorf("%w before submission: %w", ErrCancelled, err)})
	}

	spec := job.Spec()
	key, err := job.Fingerprint()
	if err != nil {
		return o.finish(job, Result{Status: status.StatusSubmissionFailed, Err: errors.Errorf("%w: %w", ErrSubmissionFailed, err)})
	}
	spec.IdempotencyKey = key

	logger.Info().Str("code", spec.Code).Int("tasks", len(spec.Tasks)).Msg("submitting job")

	id, err := o.client.Submit(ctx, spec)
	if err != nil {
		if ctx.Err() != nil {
			return o.finish(job, Result{Status: status.StatusCancelled, Err: errors.Errorf("%w during submission: %w", ErrCancelled, ctx.Err())})
		}
		logger.Error().Err(err).Msg("job submission failed")
		return o.finish(job, Result{Status: status.StatusSubmissionFailed, Err: errors.Errorf("%w: %w", ErrSubmissionFailed, err)})
	}

	job.ID = id
	job.Status = status.StatusRunning
	o.track(ctx, status.Progress{JobID: id, Code: spec.Code, Status: status.StatusPending})

	return o.await(ctx, job)
}

func (o *Orchestrator) await(ctx context.Context, job *Job) Result {
	logger := zerolog.Ctx(ctx).With().Str("job_id", job.ID).Logger()

	pollCtx, cancel := context.WithTimeout(ctx, o.opts.JobTimeout)
	defer cancel()

	ticker := time.NewTicker(o.opts.PollInterval)
	defer ticker.Stop()

	failures := 0
	var lastErr error

	for {
		select {
		case <-pollCtx.Done():
			if ctx.Err() != nil {
				return o.cancel(ctx, job)
			}
			logger.Warn().Dur("timeout", o.opts.JobTimeout).Msg("job did not finish in time, it may still complete on the mover")
			return o.finish(job, Result{
				Status:     status.StatusTimedOut,
				Diagnostic: "no terminal state within " + o.opts.JobTimeout.String(),
				Err:        errors.Errorf("%w after %s", ErrTimedOut, o.opts.JobTimeout),
			})
		case <-ticker.C:
		}
		if pollCtx.Err() != nil {
			continue
		}

		state, err := o.client.Status(pollCtx, job.ID)
		if err != nil {
			if pollCtx.Err() != nil {
				continue
			}
			failures++
			lastErr = err
			logger.Warn().Err(err).Int("failures", failures).Msg("job status query failed")
			if failures > o.opts.MaxPollErrors {
				return o.finish(job, Result{
					Status:     status.StatusTimedOut,
					Diagnostic: lastErr.Error(),
					Err:        errors.Errorf("%w: status unavailable after %d attempts: %w", ErrTimedOut, failures, lastErr),
				})
			}
			continue
		}
		failures = 0

		if state.ID == "" {
			state.ID = job.ID
		}
		o.track(ctx, state.Progress())

		if !state.Status.IsMoverTerminal() {
			continue
		}

		res := Result{Status: state.Status, Diagnostic: state.Diagnostic, Files: state.Files}
		switch state.Status {
		case status.StatusFailed:
			res.Err = errors.Errorf("%w: %s", ErrJobFailed, state.Diagnostic)
		case status.StatusPartialFailure:
			res.Err = errors.Errorf("%w: %s", ErrPartialFailure, state.Diagnostic)
		}
		logger.Info().Str("status", state.Status.String()).Msg("job finished")
		return o.finish(job, res)
	}
}

// cancel asks the mover to abandon a job after the run context is gone
func (o *Orchestrator) cancel(ctx context.Context, job *Job) Result {
	logger := zerolog.Ctx(ctx)

	abortCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.opts.AbortTimeout)
	defer cancel()

	diagnostic := "run cancelled, job abort requested"
	if err := o.client.Abort(abortCtx, job.ID); err != nil {
		logger.Warn().Err(err).Str("job_id", job.ID).Msg("aborting job failed")
		diagnostic = "run cancelled, job abort failed: " + err.Error()
	}

	o.track(ctx, status.Progress{JobID: job.ID, Code: job.Code(), Status: status.StatusCancelled})
	return o.finish(job, Result{Status: status.StatusCancelled, Diagnostic: diagnostic, Err: errors.Errorf("%w: %w", ErrCancelled, ctx.Err())})
}

func (o *Orchestrator) finish(job *Job, res Result) Result {
	job.Status = res.Status
	res.Job = job
	return res
}

func (o *Orchestrator) track(ctx context.Context, p status.Progress) {
	if o.tracker == nil {
		return
	}
	o.tracker.Track(ctx, p)
}
