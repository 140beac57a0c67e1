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

package report

import (
	"fmt"

	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/resolve"
	"github.com/walteh/accsend/pkg/status"
	"github.com/walteh/accsend/pkg/tracker"
	"github.com/walteh/accsend/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ Outcome is the final result of one selected component
type Outcome string

const (
	OutcomeSucceeded           Outcome = "succeeded"
	OutcomeFailed              Outcome = "failed"
	OutcomePartialFailure      Outcome = "partial_failure"
	OutcomeTimedOut            Outcome = "timed_out"
	OutcomeCancelled           Outcome = "cancelled"
	OutcomeSubmissionFailed    Outcome = "submission_failed"
	OutcomeLocationNotMapped   Outcome = "location_not_mapped"
	OutcomeProjectCodeNotFound Outcome = "project_code_not_found"
	OutcomeEmptyRelativePath   Outcome = "empty_relative_path"
	OutcomePathEscapesProject  Outcome = "path_escapes_project"
	OutcomeMissingPath         Outcome = "missing_path"
	OutcomeUnsupportedLayout   Outcome = "unsupported_layout"
	OutcomeSkipped             Outcome = "skipped"
)

// IsSuccess reports whether the outcome leaves nothing for the user to do
func (o Outcome) IsSuccess() bool {
	return o == OutcomeSucceeded || o == OutcomeSkipped
}

// 🚦 Severity is the overall weight of a report
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// 📄 OutcomeRecord is the per-component line of a report
type OutcomeRecord struct {
	ComponentID   string  `json:"component_id"`
	ComponentName string  `json:"component_name,omitempty"`
	Path          string  `json:"path,omitempty"` // resolved relative path, when resolution succeeded
	Outcome       Outcome `json:"outcome"`
	Diagnostic    string  `json:"diagnostic,omitempty"`
	JobID         string  `json:"job_id,omitempty"`
}

// 📊 Report is the structured result handed back to the invoking interface
type Report struct {
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Success     bool            `json:"success"`
	Severity    Severity        `json:"severity"`
	Message     string          `json:"message"`
	Records     []OutcomeRecord `json:"records"`
	JobIDs      []string        `json:"job_ids,omitempty"`
}

// Counts tallies records per outcome
func (r *Report) Counts() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, rec := range r.Records {
		counts[rec.Outcome]++
	}
	return counts
}

// 📥 Input is everything known about a run when it is summarized
type Input struct {
	Source      string
	Destination string
	Components  []tracker.Component             // selection order
	Paths       map[string]resolve.RelativePath // by component ID, for resolved components
	Failures    map[string]error                // by component ID, resolution failures
	Skipped     map[string]string               // by component ID, why the component was left out
	Results     []transfer.Result
}

// 🧾 Summarize merges resolution failures and job outcomes into exactly one
// record per selected component, in selection order
func Summarize(in Input) *Report {
	type placement struct {
		result transfer.Result
		path   string
	}

	placed := make(map[string]placement)
	rep := &Report{
		Source:      in.Source,
		Destination: in.Destination,
		Records:     make([]OutcomeRecord, 0, len(in.Components)),
	}

	for _, res := range in.Results {
		if res.Job == nil {
			continue
		}
		if res.Job.ID != "" {
			rep.JobIDs = append(rep.JobIDs, res.Job.ID)
		}
		for _, m := range res.Job.Members {
			if _, ok := placed[m.ComponentID]; !ok {
				placed[m.ComponentID] = placement{result: res, path: m.Path}
			}
		}
	}

	for _, c := range in.Components {
		rec := OutcomeRecord{ComponentID: c.ID, ComponentName: c.Name}
		if p, ok := in.Paths[c.ID]; ok {
			rec.Path = p.String()
		}

		switch {
		case in.Failures[c.ID] != nil:
			err := in.Failures[c.ID]
			rec.Outcome = ClassifyError(err)
			rec.Diagnostic = err.Error()
		case in.Skipped[c.ID] != "":
			rec.Outcome = OutcomeSkipped
			rec.Diagnostic = in.Skipped[c.ID]
		default:
			p, ok := placed[c.ID]
			if !ok {
				rec.Outcome = OutcomeFailed
				rec.Diagnostic = "component was not part of any transfer job"
				break
			}
			rec.JobID = p.result.Job.ID
			rec.Outcome, rec.Diagnostic = jobOutcome(p.result, p.path)
		}

		rep.Records = append(rep.Records, rec)
	}

	rep.Success, rep.Severity = assess(rep.Records)
	rep.Message = rep.message()
	return rep
}

// ClassifyError maps a resolution error onto its outcome kind
func ClassifyError(err error) Outcome {
	kinds := []struct {
		err     error
		outcome Outcome
	}{
		{resolve.ErrLocationNotMapped, OutcomeLocationNotMapped},
		{resolve.ErrProjectCodeNotFound, OutcomeProjectCodeNotFound},
		{resolve.ErrEmptyRelativePath, OutcomeEmptyRelativePath},
		{resolve.ErrPathEscapesProject, OutcomePathEscapesProject},
		{resolve.ErrMissingPath, OutcomeMissingPath},
		{resolve.ErrUnsupportedLayout, OutcomeUnsupportedLayout},
		{transfer.ErrSubmissionFailed, OutcomeSubmissionFailed},
		{transfer.ErrTimedOut, OutcomeTimedOut},
		{transfer.ErrCancelled, OutcomeCancelled},
		{transfer.ErrPartialFailure, OutcomePartialFailure},
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.outcome
		}
	}
	return OutcomeFailed
}

func jobOutcome(res transfer.Result, path string) (Outcome, string) {
	switch res.Status {
	case status.StatusSucceeded:
		return OutcomeSucceeded, ""
	case status.StatusPartialFailure:
		if f, ok := fileFor(res, path); ok {
			if f.Status == status.StatusSucceeded {
				return OutcomeSucceeded, ""
			}
			return OutcomeFailed, firstNonEmpty(f.Diagnostic, res.Diagnostic)
		}
		return OutcomePartialFailure, res.Diagnostic
	case status.StatusFailed:
		return OutcomeFailed, res.Diagnostic
	case status.StatusTimedOut:
		return OutcomeTimedOut, firstNonEmpty(res.Diagnostic, "job may still complete on the mover")
	case status.StatusCancelled:
		return OutcomeCancelled, res.Diagnostic
	case status.StatusSubmissionFailed:
		return OutcomeSubmissionFailed, errorText(res.Err)
	default:
		return OutcomeFailed, fmt.Sprintf("job ended in unexpected state %s", res.Status)
	}
}

func fileFor(res transfer.Result, path string) (mover.FileState, bool) {
	share := res.Job.SharePath(path)
	for _, f := range res.Files {
		if f.Path == share || f.Path == path {
			return f, true
		}
	}
	return mover.FileState{}, false
}

func assess(records []OutcomeRecord) (bool, Severity) {
	ok, bad := 0, 0
	for _, rec := range records {
		if rec.Outcome == OutcomeSkipped {
			continue
		}
		if rec.Outcome.IsSuccess() {
			ok++
		} else {
			bad++
		}
	}
	switch {
	case bad == 0:
		return true, SeverityInfo
	case ok == 0:
		return false, SeverityError
	default:
		return false, SeverityWarning
	}
}

func (r *Report) message() string {
	counts := r.Counts()
	total := len(r.Records)
	moved := counts[OutcomeSucceeded]
	switch {
	case total == 0:
		return "Nothing to transfer"
	case r.Success:
		return fmt.Sprintf("Transferred %d of %d component(s) from %s to %s", moved, total, r.Source, r.Destination)
	default:
		return fmt.Sprintf("Transferred %d of %d component(s) from %s to %s, %d need attention",
			moved, total, r.Source, r.Destination, total-moved-counts[OutcomeSkipped])
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
