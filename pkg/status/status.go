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

package status

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Status represents the lifecycle state of a transfer job
type Status int

const (
	StatusUnknown          Status = iota
	StatusPending                 // Built or queued on the mover, not started
	StatusRunning                 // Mover is transferring
	StatusSucceeded               // Every file arrived
	StatusFailed                  // Nothing arrived
	StatusPartialFailure          // Some files arrived, some did not
	StatusTimedOut                // Polling bound elapsed without a terminal state
	StatusCancelled               // Run was cancelled while the job was in flight
	StatusSubmissionFailed        // Mover rejected or never received the job
)

var statusNames = map[Status]string{
	StatusPending:          "pending",
	StatusRunning:          "running",
	StatusSucceeded:        "succeeded",
	StatusFailed:           "failed",
	StatusPartialFailure:   "partial_failure",
	StatusTimedOut:         "timed_out",
	StatusCancelled:        "cancelled",
	StatusSubmissionFailed: "submission_failed",
}

// String returns a string representation of Status
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// 🔍 Parse converts a status name back into a Status
func Parse(name string) (Status, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return StatusUnknown, errors.Errorf("unknown job status %q", name)
}

// IsTerminal reports whether no further transitions can happen
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusPartialFailure,
		StatusTimedOut, StatusCancelled, StatusSubmissionFailed:
		return true
	default:
		return false
	}
}

// IsMoverTerminal reports whether the mover itself considers the job finished
func (s Status) IsMoverTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusPartialFailure
}

// 📈 Progress is a single observation of a job as reported by the mover
type Progress struct {
	JobID    string  // Mover job identifier
	Code     string  // Mover job code (human label)
	Status   Status  // Current status
	Percent  float64 // 0-100
	SpeedMBs float64 // Transfer speed in MB/s
	ETR      string  // Estimated time remaining, as reported by the mover
}

// 📋 Tracker records the latest progress of every job in a run and logs changes
type Tracker struct {
	logger    *zerolog.Logger
	formatter Formatter

	mu   sync.RWMutex
	jobs map[string]Progress
}

// 🏭 NewTracker creates a new job tracker
func NewTracker(logger *zerolog.Logger) *Tracker {
	return &Tracker{
		logger:    logger,
		formatter: NewDefaultFormatter(),
		jobs:      make(map[string]Progress),
	}
}

// Track stores the latest observation for a job
func (t *Tracker) Track(ctx context.Context, p Progress) {
	t.mu.Lock()
	prev, seen := t.jobs[p.JobID]
	t.jobs[p.JobID] = p
	t.mu.Unlock()

	evt := t.logger.Debug()
	if !seen || prev.Status != p.Status {
		evt = t.logger.Info()
	}
	evt.Str("job_id", p.JobID).
		Str("status", p.Status.String()).
		Float64("progress", p.Percent).
		Float64("speed_mbs", p.SpeedMBs).
		Str("etr", p.ETR).
		Msg(t.formatter.FormatProgress(p))
}

// Get returns the latest observation for a job
func (t *Tracker) Get(ctx context.Context, jobID string) (Progress, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.jobs[jobID]
	if !ok {
		return Progress{}, errors.Errorf("job not tracked: %s", jobID)
	}
	return p, nil
}

// Finished logs how many of a run's jobs reached a terminal state
func (t *Tracker) Finished(ctx context.Context, done, total int) {
	t.logger.Info().Int("done", done).Int("total", total).Msg(t.formatter.FormatCount(done, total))
}
