// Package operation wires tracker, mover, resolution and orchestration into the send action
package operation

import (
	"context"

	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/log"
	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/report"
	"github.com/walteh/accsend/pkg/resolve"
	"github.com/walteh/accsend/pkg/status"
	"github.com/walteh/accsend/pkg/tracker"
	"github.com/walteh/accsend/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the main interface for accsend operations
type Operator interface {
	// Send relocates every component beneath the selection to the destination location
	Send(ctx context.Context, req Request) (*report.Report, error)
	// Locations lists the tracker locations that can take part in a transfer
	Locations(ctx context.Context) ([]Location, error)
}

// 📨 Request is one invocation of the send action
type Request struct {
	Selection           []tracker.Selection
	SourceLocation      string // optional, defaults to each component's own location
	DestinationLocation string
}

// 📍 Location is a tracker location and whether the mover knows it
type Location struct {
	Name   string
	Mapped bool
	SiteID string
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the accsend configuration
	Config *config.Config
	// Tracker is the production tracker the selection lives in
	Tracker tracker.Client
	// Mover is the file distribution service
	Mover mover.Client
	// Progress receives job progress observations (optional)
	Progress *status.Tracker
	// Console prints routing decisions for humans (optional)
	Console *log.Logger
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Tracker == nil {
		return nil, errors.Errorf("tracker client is required")
	}
	if opts.Mover == nil {
		return nil, errors.Errorf("mover client is required")
	}

	resolver, err := resolve.NewResolver(opts.Config.Resolve)
	if err != nil {
		return nil, errors.Errorf("creating path resolver: %w", err)
	}

	orchOpts := transfer.OptionsFromConfig(opts.Mover, opts.Config.Transfer)
	orchOpts.Tracker = opts.Progress
	orchestrator, err := transfer.NewOrchestrator(orchOpts)
	if err != nil {
		return nil, errors.Errorf("creating orchestrator: %w", err)
	}

	return &operator{
		config:       opts.Config,
		tracker:      opts.Tracker,
		mapper:       resolve.NewMapper(opts.Mover),
		resolver:     resolver,
		orchestrator: orchestrator,
		progress:     opts.Progress,
		console:      opts.Console,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config       *config.Config
	tracker      tracker.Client
	mapper       *resolve.Mapper
	resolver     *resolve.Resolver
	orchestrator *transfer.Orchestrator
	progress     *status.Tracker
	console      *log.Logger
}

// Send is implemented in send.go

// 📍 Locations returns the transferable tracker locations and their mover mapping
func (o *operator) Locations(ctx context.Context) ([]Location, error) {
	all, err := o.tracker.Locations(ctx)
	if err != nil {
		return nil, errors.Errorf("listing tracker locations: %w", err)
	}

	out := make([]Location, 0, len(all))
	for _, loc := range resolve.TransferableLocations(all, o.config.Resolve.ExcludedLocations) {
		site, err := o.mapper.ResolveSite(ctx, loc.Name)
		switch {
		case err == nil:
			out = append(out, Location{Name: loc.Name, Mapped: true, SiteID: site.ID})
		case errors.Is(err, resolve.ErrLocationNotMapped):
			out = append(out, Location{Name: loc.Name})
		default:
			return nil, errors.Errorf("resolving location %s: %w", loc.Name, err)
		}
	}
	return out, nil
}
