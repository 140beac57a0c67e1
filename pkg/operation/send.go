package operation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/accsend/pkg/log"
	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/report"
	"github.com/walteh/accsend/pkg/resolve"
	"github.com/walteh/accsend/pkg/tracker"
	"github.com/walteh/accsend/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// componentLocations labels a run whose components each leave from their own location
const componentLocations = "component locations"

// 📤 Send harvests, resolves, submits and awaits, then reports one outcome per component.
// A nil report means nothing was attempted; a report with an error means the run
// was aborted but every component is still accounted for.
func (o *operator) Send(ctx context.Context, req Request) (*report.Report, error) {
	logger := zerolog.Ctx(ctx)

	if len(req.Selection) == 0 {
		return nil, errors.Errorf("nothing selected")
	}
	if strings.TrimSpace(req.DestinationLocation) == "" {
		return nil, errors.Errorf("destination location: %w", resolve.ErrEmptyLocationName)
	}
	if req.SourceLocation != "" && req.SourceLocation == req.DestinationLocation {
		return nil, errors.Errorf("%w: %s", resolve.ErrSameLocation, req.SourceLocation)
	}
	if err := resolve.CheckTransferable(req.DestinationLocation, o.config.Resolve.ExcludedLocations); err != nil {
		return nil, errors.Errorf("destination location: %w", err)
	}
	if req.SourceLocation != "" {
		if err := resolve.CheckTransferable(req.SourceLocation, o.config.Resolve.ExcludedLocations); err != nil {
			return nil, errors.Errorf("source location: %w", err)
		}
	}

	components, err := o.tracker.Components(ctx, req.Selection, tracker.HarvestOptions{
		SourceLocation:    req.SourceLocation,
		ExcludedLocations: o.config.Resolve.ExcludedLocations,
	})
	if err != nil {
		return nil, errors.Errorf("harvesting components: %w", err)
	}
	components = uniqueComponents(components)

	logger.Info().
		Int("components", len(components)).
		Str("source", req.SourceLocation).
		Str("destination", req.DestinationLocation).
		Msg("harvested components")

	in := report.Input{
		Source:      req.SourceLocation,
		Destination: req.DestinationLocation,
		Components:  components,
		Paths:       make(map[string]resolve.RelativePath),
		Failures:    make(map[string]error),
		Skipped:     make(map[string]string),
	}
	if in.Source == "" {
		in.Source = componentLocations
	}

	endpoints := []string{req.DestinationLocation}
	if req.SourceLocation != "" {
		endpoints = append(endpoints, req.SourceLocation)
	}
	if err := o.mapper.Validate(ctx, endpoints...); err != nil {
		return o.abort(in, "run locations", err)
	}

	destination, err := o.mapper.ResolveSite(ctx, req.DestinationLocation)
	if err != nil {
		return o.abort(in, "destination location", err)
	}

	var fixedSource *mover.Site
	if req.SourceLocation != "" {
		site, err := o.mapper.ResolveSite(ctx, req.SourceLocation)
		if err != nil {
			return o.abort(in, "source location", err)
		}
		fixedSource = &site
	}

	type sourceGroup struct {
		site     mover.Site
		resolved []transfer.ResolvedComponent
	}
	groups := make([]*sourceGroup, 0)
	bySite := make(map[string]*sourceGroup)

	for _, c := range components {
		if pattern, ok := o.resolver.Ignored(c); ok {
			in.Skipped[c.ID] = "matches ignore pattern " + pattern
			o.logComponent(ctx, c, "", "SKIPPED")
			continue
		}

		rel, err := o.resolver.ResolveRelativePath(c)
		if err != nil {
			logger.Warn().Err(err).Str("component", c.ID).Str("path", c.Path).Msg("cannot resolve component path")
			in.Failures[c.ID] = err
			o.logComponent(ctx, c, "", "REJECTED")
			continue
		}
		in.Paths[c.ID] = rel

		source := fixedSource
		if source == nil {
			if c.LocationName == req.DestinationLocation {
				in.Skipped[c.ID] = "already at " + req.DestinationLocation
				o.logComponent(ctx, c, rel.String(), "SKIPPED")
				continue
			}
			site, err := o.mapper.ResolveSite(ctx, c.LocationName)
			if err != nil {
				if !errors.Is(err, resolve.ErrLocationNotMapped) && !errors.Is(err, resolve.ErrEmptyLocationName) {
					return nil, errors.Errorf("resolving source location %s: %w", c.LocationName, err)
				}
				in.Failures[c.ID] = errors.Errorf("source location: %w", err)
				o.logComponent(ctx, c, rel.String(), "REJECTED")
				continue
			}
			source = &site
		}

		g, ok := bySite[source.Name]
		if !ok {
			g = &sourceGroup{site: *source}
			bySite[source.Name] = g
			groups = append(groups, g)
		}
		g.resolved = append(g.resolved, transfer.ResolvedComponent{Component: c, Path: rel, Destination: destination})
	}

	jobs := make([]*transfer.Job, 0)
	for _, g := range groups {
		jobs = append(jobs, transfer.BuildJobs(g.site, g.resolved)...)
	}

	if len(jobs) == 0 {
		logger.Warn().Msg("no components left after resolving paths")
		return report.Summarize(in), nil
	}

	o.logJobs(ctx, jobs, components)

	in.Results = o.orchestrator.Run(ctx, jobs)
	o.logResults(ctx, in.Results)

	rep := report.Summarize(in)
	logger.Info().
		Bool("success", rep.Success).
		Str("severity", string(rep.Severity)).
		Strs("job_ids", rep.JobIDs).
		Msg(rep.Message)
	return rep, nil
}

// abort handles a location that cannot be resolved for the whole run. An unmapped
// location still yields a report marking every component; anything else means the
// mover directory was unreachable.
func (o *operator) abort(in report.Input, what string, err error) (*report.Report, error) {
	if !errors.Is(err, resolve.ErrLocationNotMapped) {
		return nil, errors.Errorf("resolving %s: %w", what, err)
	}
	wrapped := errors.Errorf("%s: %w", what, err)
	for _, c := range in.Components {
		in.Failures[c.ID] = wrapped
	}
	return report.Summarize(in), wrapped
}

func uniqueComponents(components []tracker.Component) []tracker.Component {
	seen := make(map[string]bool, len(components))
	out := make([]tracker.Component, 0, len(components))
	for _, c := range components {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

func locationKind(c tracker.Component) string {
	if c.LocationName == tracker.UnmanagedLocation {
		return "unmanaged"
	}
	return "managed"
}

func (o *operator) logComponent(ctx context.Context, c tracker.Component, path string, state string) {
	if o.console == nil {
		return
	}
	o.console.LogComponentOperation(ctx, log.ComponentOperation{
		Name:       c.Name,
		Path:       path,
		Type:       locationKind(c),
		Status:     state,
		IsRejected: state == "REJECTED",
		IsSkipped:  state == "SKIPPED",
	})
}

func (o *operator) logJobs(ctx context.Context, jobs []*transfer.Job, components []tracker.Component) {
	if o.console == nil {
		return
	}

	byID := make(map[string]tracker.Component, len(components))
	for _, c := range components {
		byID[c.ID] = c
	}

	for _, job := range jobs {
		o.console.StartJobOperation(ctx, log.JobOperation{
			Code:        job.Code(),
			Project:     job.ProjectCode,
			Source:      job.Source.Name,
			Destination: job.Destination.Name,
			Paths:       len(job.Paths),
		})
		seen := make(map[string]bool)
		for _, m := range job.Members {
			c := byID[m.ComponentID]
			op := log.ComponentOperation{Name: c.Name, Path: m.Path, Type: locationKind(c), Status: "QUEUED", IsQueued: true}
			if seen[m.Path] {
				op.Status, op.IsQueued, op.IsDuplicate = "DUPLICATE", false, true
			}
			seen[m.Path] = true
			o.console.LogComponentOperation(ctx, op)
		}
		o.console.EndJobOperation(ctx)
	}
}

// logResults prints one closing line per job, with the last observed progress when known
func (o *operator) logResults(ctx context.Context, results []transfer.Result) {
	if o.console == nil {
		return
	}

	for _, res := range results {
		label := res.Job.ID
		if label == "" {
			label = res.Job.Code()
		}
		if !res.Succeeded() {
			diagnostic := res.Diagnostic
			if diagnostic == "" && res.Err != nil {
				diagnostic = res.Err.Error()
			}
			o.console.Errorf("%s %s: %s", label, res.Status, diagnostic)
			continue
		}
		if o.progress != nil {
			if p, err := o.progress.Get(ctx, res.Job.ID); err == nil && p.SpeedMBs > 0 {
				o.console.Infof("%s %s, last seen at %.1f MB/s", label, res.Status, p.SpeedMBs)
				continue
			}
		}
		o.console.Infof("%s %s", label, res.Status)
	}
	o.console.LogNewline()
}
