package mover

import (
	"context"
	"sort"
	"strings"

	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Factory builds a mover client from configuration
type Factory func(ctx context.Context, cfg config.MoverConfig) (Client, error)

var registry = map[string]Factory{}

// Register makes a mover provider available by name
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New builds the mover client named by cfg.Provider
func New(ctx context.Context, cfg config.MoverConfig) (Client, error) {
	factory, ok := registry[cfg.Provider]
	if !ok {
		options := []string{}
		for k := range registry {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("mover provider %s not found, options: %s", cfg.Provider, strings.Join(options, ", "))
	}
	return factory(ctx, cfg)
}

// Client is the file distribution service. Submit is not idempotent: every call
// creates a new transfer.
type Client interface {
	// Name returns the name of the provider (e.g. "accsyn")
	Name() string
	// Sites returns the mover site directory
	Sites(ctx context.Context) ([]Site, error)
	// Submit creates a transfer job and returns its identifier
	Submit(ctx context.Context, spec JobSpec) (string, error)
	// Status queries the current state of a job
	Status(ctx context.Context, jobID string) (JobState, error)
	// Abort asks the mover to abandon a job
	Abort(ctx context.Context, jobID string) error
}

// Site is a mover-side storage endpoint
type Site struct {
	ID   string
	Name string
}

// Task moves one share-relative path from a source site to a destination site
type Task struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// JobSpec is the descriptor sent on submission
type JobSpec struct {
	Code        string `json:"code"`
	Tasks       []Task `json:"tasks"`
	MirrorPaths bool   `json:"mirror_paths"`
	// IdempotencyKey identifies the descriptor; it is not part of the fingerprint
	IdempotencyKey string `json:"-"`
}

// FileState is the per-file result of a job, when the mover reports it
type FileState struct {
	Path       string // Share-relative path
	Status     status.Status
	Diagnostic string
}

// JobState is a single status observation
type JobState struct {
	ID         string
	Code       string
	Status     status.Status
	Diagnostic string
	Percent    float64
	SpeedMBs   float64
	ETR        string
	Files      []FileState
}

// Progress converts the observation for status tracking
func (s JobState) Progress() status.Progress {
	return status.Progress{
		JobID:    s.ID,
		Code:     s.Code,
		Status:   s.Status,
		Percent:  s.Percent,
		SpeedMBs: s.SpeedMBs,
		ETR:      s.ETR,
	}
}

// SiteAddress formats a task endpoint ("site=NAME" or "site=NAME:path")
func SiteAddress(site string, path string) string {
	if path == "" {
		return "site=" + site
	}
	return "site=" + site + ":" + path
}
