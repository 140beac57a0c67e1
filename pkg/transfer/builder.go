package transfer

import (
	"github.com/walteh/accsend/pkg/mover"
)

// 🏗️ BuildJobs groups resolved components bound for the same destination (and
// project) into one job each. Groups and paths keep first-seen order, so the
// same input always yields the same jobs.
func BuildJobs(source mover.Site, resolved []ResolvedComponent) []*Job {
	type groupKey struct {
		destination string
		project     string
	}

	index := make(map[groupKey]*Job)
	jobs := make([]*Job, 0)

	for _, rc := range resolved {
		key := groupKey{destination: rc.Destination.Name, project: rc.Path.ProjectCode}
		job, ok := index[key]
		if !ok {
			job = newJob(source, rc.Destination, rc.Path.ProjectCode)
			index[key] = job
			jobs = append(jobs, job)
		}
		job.add(rc.Component.ID, rc.Path.Path)
	}

	return jobs
}
