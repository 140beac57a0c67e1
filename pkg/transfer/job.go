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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/gowebpki/jcs"
	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/resolve"
	"github.com/walteh/accsend/pkg/status"
	"github.com/walteh/accsend/pkg/tracker"
	"gitlab.com/tozd/go/errors"
)

// 🧩 ResolvedComponent is a component whose path and destination are known
type ResolvedComponent struct {
	Component   tracker.Component
	Path        resolve.RelativePath
	Destination mover.Site
}

// Member ties a selected component to the path it contributes to a job
type Member struct {
	ComponentID string
	Path        string
}

// 📦 Job is one mover transfer between a fixed source and destination site
type Job struct {
	Source      mover.Site
	Destination mover.Site
	ProjectCode string
	Paths       []string // insertion ordered, no duplicates
	Members     []Member // every component routed to this job, in input order

	ID     string        // assigned by the mover on submission
	Status status.Status // driven by the orchestrator

	submitted atomic.Bool
}

func newJob(source, destination mover.Site, projectCode string) *Job {
	return &Job{
		Source:      source,
		Destination: destination,
		ProjectCode: projectCode,
		Status:      status.StatusPending,
	}
}

func (j *Job) add(componentID, path string) {
	j.Members = append(j.Members, Member{ComponentID: componentID, Path: path})
	for _, p := range j.Paths {
		if p == path {
			return
		}
	}
	j.Paths = append(j.Paths, path)
}

// SharePath returns a job path relative to the mover's default root share
func (j *Job) SharePath(path string) string {
	return j.ProjectCode + "/" + path
}

// Code is the human label the mover shows for this job
func (j *Job) Code() string {
	return fmt.Sprintf("Transfer of %d component(s) from %s to %s", len(j.Members), j.Source.Name, j.Destination.Name)
}

// 📝 Spec builds the mover descriptor: one task per unique path
func (j *Job) Spec() mover.JobSpec {
	spec := mover.JobSpec{
		Code:        j.Code(),
		Tasks:       make([]mover.Task, 0, len(j.Paths)),
		MirrorPaths: true,
	}
	for _, p := range j.Paths {
		spec.Tasks = append(spec.Tasks, mover.Task{
			Source:      mover.SiteAddress(j.Source.Name, j.SharePath(p)),
			Destination: mover.SiteAddress(j.Destination.Name, ""),
		})
	}
	return spec
}

// 🔑 Fingerprint is the sha256 of the canonical (RFC 8785) JSON descriptor
func (j *Job) Fingerprint() (string, error) {
	raw, err := json.Marshal(j.Spec())
	if err != nil {
		return "", errors.Errorf("encoding job spec: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", errors.Errorf("canonicalizing job spec: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Submitted reports whether the job was already handed to the mover
func (j *Job) Submitted() bool {
	return j.submitted.Load()
}
