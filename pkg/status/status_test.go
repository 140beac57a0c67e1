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
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		status        Status
		name          string
		terminal      bool
		moverTerminal bool
	}{
		{StatusPending, "pending", false, false},
		{StatusRunning, "running", false, false},
		{StatusSucceeded, "succeeded", true, true},
		{StatusFailed, "failed", true, true},
		{StatusPartialFailure, "partial_failure", true, true},
		{StatusTimedOut, "timed_out", true, false},
		{StatusCancelled, "cancelled", true, false},
		{StatusSubmissionFailed, "submission_failed", true, false},
		{StatusUnknown, "unknown", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.status.String(), "name should match")
			assert.Equal(t, tt.terminal, tt.status.IsTerminal(), "terminal flag should match")
			assert.Equal(t, tt.moverTerminal, tt.status.IsMoverTerminal(), "mover terminal flag should match")

			if tt.status == StatusUnknown {
				return
			}
			parsed, err := Parse(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.status, parsed, "parse should round trip")
		})
	}
}

func TestStatusJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Status{"s": StatusPartialFailure})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"partial_failure"}`, string(data))

	var out map[string]Status
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, StatusPartialFailure, out["s"])

	_, err = Parse("exploded")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown job status")
}

func TestTracker(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	tracker := NewTracker(&logger)
	ctx := context.Background()

	tracker.Track(ctx, Progress{JobID: "b", Status: StatusRunning, Percent: 10})
	tracker.Track(ctx, Progress{JobID: "a", Status: StatusPending})
	tracker.Track(ctx, Progress{JobID: "b", Status: StatusSucceeded, Percent: 100})

	tracker.Finished(ctx, 1, 2)

	got, err := tracker.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, got.Status, "latest observation should win")

	got, err = tracker.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)

	_, err = tracker.Get(ctx, "missing")
	require.Error(t, err)
}

func TestFormatter(t *testing.T) {
	f := NewDefaultFormatter()

	tests := []struct {
		name string
		p    Progress
		want string
	}{
		{
			name: "running_with_etr",
			p:    Progress{JobID: "j1", Code: "Transfer of 2", Status: StatusRunning, Percent: 42, SpeedMBs: 12.5, ETR: "00:01:00"},
			want: "⏳ Transfer of 2; running, 12.5 MB/s, 42%, etr: 00:01:00",
		},
		{
			name: "falls_back_to_job_id",
			p:    Progress{JobID: "j1", Status: StatusPending},
			want: "⏳ j1; pending, 0.0 MB/s, 0%",
		},
		{
			name: "succeeded",
			p:    Progress{JobID: "j1", Status: StatusSucceeded},
			want: "✅ j1 finished",
		},
		{
			name: "timed_out",
			p:    Progress{JobID: "j1", Status: StatusTimedOut},
			want: "⌛ j1 timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatProgress(tt.p))
		})
	}

	assert.Equal(t, "⏳ Progress: 1/4 (25%)", f.FormatCount(1, 4))
	assert.Equal(t, "✅ Progress: 0/0 (0%)", f.FormatCount(0, 0))
	assert.Equal(t, "❌ Error: boom", f.FormatError(errors.New("boom")))
	assert.Empty(t, f.FormatError(nil))
}
