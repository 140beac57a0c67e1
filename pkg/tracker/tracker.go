package tracker

import (
	"context"
	"sort"
	"strings"

	"github.com/walteh/accsend/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// Factory builds a tracker client from configuration
type Factory func(ctx context.Context, cfg config.TrackerConfig) (Client, error)

var registry = map[string]Factory{}

// Register makes a tracker provider available by name
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New builds the tracker client named by cfg.Provider
func New(ctx context.Context, cfg config.TrackerConfig) (Client, error) {
	factory, ok := registry[cfg.Provider]
	if !ok {
		options := []string{}
		for k := range registry {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("tracker provider %s not found, options: %s", cfg.Provider, strings.Join(options, ", "))
	}
	return factory(ctx, cfg)
}

// Client is the read-only view of the production tracker the action needs
type Client interface {
	// Name returns the name of the provider (e.g. "ftrack")
	Name() string
	// Locations returns every location registered on the tracker
	Locations(ctx context.Context) ([]Location, error)
	// Components harvests every component beneath the selected entities
	Components(ctx context.Context, selection []Selection, opts HarvestOptions) ([]Component, error)
}

// Location is a tracker-side storage endpoint
type Location struct {
	ID   string
	Name string
}

// Project owns components; its code is the path segment both systems agree on
type Project struct {
	ID   string
	Code string
	Name string
}

// Component is a registered, trackable unit of published data
type Component struct {
	ID           string
	Name         string
	LocationName string // Location the path below was taken from
	Path         string // Absolute, UNC-style or resource identifier path
	ProjectCode  string
}

// EntityType identifies what kind of entity a selection points at
type EntityType string

const (
	EntityProject EntityType = "show"
	EntityList    EntityType = "list"
)

// Selection is one entity picked in the invoking interface
type Selection struct {
	EntityType EntityType
	EntityID   string
}

// ParseSelection parses "type:id" as typed on the command line
func ParseSelection(s string) (Selection, error) {
	typ, id, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(typ) == "" || strings.TrimSpace(id) == "" {
		return Selection{}, errors.Errorf("invalid selection %q, want type:id", s)
	}
	return Selection{EntityType: EntityType(strings.TrimSpace(typ)), EntityID: strings.TrimSpace(id)}, nil
}

// HarvestOptions controls which component location a path is read from
type HarvestOptions struct {
	// SourceLocation is preferred when a component lives in several locations
	SourceLocation string
	// ExcludedLocations are never used as a path source, except ftrack.unmanaged
	ExcludedLocations []string
}

// UnmanagedLocation records paths the tracker does not materialize itself
const UnmanagedLocation = "ftrack.unmanaged"

// Usable reports whether a location may provide a component path
func (o HarvestOptions) Usable(locationName string) bool {
	if locationName == UnmanagedLocation {
		return true
	}
	for _, ex := range o.ExcludedLocations {
		if ex == locationName {
			return false
		}
	}
	return true
}
