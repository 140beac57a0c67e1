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

package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Defaults
const (
	DefaultTrackerProvider   = "ftrack"
	DefaultMoverProvider     = "accsyn"
	DefaultPollInterval      = 2 * time.Second
	DefaultJobTimeout        = time.Hour
	DefaultAbortTimeout      = 10 * time.Second
	DefaultMaxPollErrors     = 3
	DefaultMaxConcurrentJobs = 4
)

// DefaultExcludedLocations are tracker-internal locations no transfer may target
var DefaultExcludedLocations = []string{
	"ftrack.origin",
	"ftrack.connect",
	"ftrack.unmanaged",
	"ftrack.server",
	"ftrack.review",
}

// 🗂️ TrackerConfig points at the production tracker
type TrackerConfig struct {
	Provider  string `json:"provider" yaml:"provider"`
	Server    string `json:"server" yaml:"server"`
	User      string `json:"user" yaml:"user"`
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APIKeyEnv string `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
}

// 🚚 MoverConfig points at the file distribution service
type MoverConfig struct {
	Provider  string `json:"provider" yaml:"provider"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Workspace string `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	User      string `json:"user" yaml:"user"`
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APIKeyEnv string `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
}

// ⏱️ TransferConfig bounds job orchestration
type TransferConfig struct {
	PollInterval      string `json:"poll_interval,omitempty" yaml:"poll_interval,omitempty"`
	JobTimeout        string `json:"job_timeout,omitempty" yaml:"job_timeout,omitempty"`
	AbortTimeout      string `json:"abort_timeout,omitempty" yaml:"abort_timeout,omitempty"`
	MaxPollErrors     *int   `json:"max_poll_errors,omitempty" yaml:"max_poll_errors,omitempty"` // nil means default, 0 means no retries
	Concurrent        bool   `json:"concurrent,omitempty" yaml:"concurrent,omitempty"`
	MaxConcurrentJobs int    `json:"max_concurrent_jobs,omitempty" yaml:"max_concurrent_jobs,omitempty"`

	pollInterval time.Duration
	jobTimeout   time.Duration
	abortTimeout time.Duration
}

// 🧭 ResolveConfig controls path and location resolution
type ResolveConfig struct {
	ProjectRoots      []string `json:"project_roots,omitempty" yaml:"project_roots,omitempty"`
	ExcludedLocations []string `json:"excluded_locations,omitempty" yaml:"excluded_locations,omitempty"`
	IgnorePatterns    []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Tracker  TrackerConfig  `json:"tracker" yaml:"tracker"`
	Mover    MoverConfig    `json:"mover" yaml:"mover"`
	Transfer TransferConfig `json:"transfer" yaml:"transfer"`
	Resolve  ResolveConfig  `json:"resolve" yaml:"resolve"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration, fills defaults from the environment
// and parses durations
func (cfg *Config) Validate() error {
	cfg.applyEnvironment(os.LookupEnv)

	if cfg.Tracker.Provider == "" {
		cfg.Tracker.Provider = DefaultTrackerProvider
	}
	if cfg.Mover.Provider == "" {
		cfg.Mover.Provider = DefaultMoverProvider
	}

	if cfg.Tracker.Server == "" {
		return errors.Errorf("tracker.server is required")
	}
	if cfg.Mover.Endpoint == "" {
		return errors.Errorf("mover.endpoint is required")
	}
	cfg.Tracker.Server = strings.TrimRight(cfg.Tracker.Server, "/")
	cfg.Mover.Endpoint = strings.TrimRight(cfg.Mover.Endpoint, "/")

	var err error
	if cfg.Transfer.pollInterval, err = parseDuration("transfer.poll_interval", cfg.Transfer.PollInterval, DefaultPollInterval); err != nil {
		return err
	}
	if cfg.Transfer.jobTimeout, err = parseDuration("transfer.job_timeout", cfg.Transfer.JobTimeout, DefaultJobTimeout); err != nil {
		return err
	}
	if cfg.Transfer.abortTimeout, err = parseDuration("transfer.abort_timeout", cfg.Transfer.AbortTimeout, DefaultAbortTimeout); err != nil {
		return err
	}

	switch {
	case cfg.Transfer.MaxPollErrors == nil:
		budget := DefaultMaxPollErrors
		cfg.Transfer.MaxPollErrors = &budget
	case *cfg.Transfer.MaxPollErrors < 0:
		return errors.Errorf("transfer.max_poll_errors must not be negative")
	}
	switch {
	case cfg.Transfer.MaxConcurrentJobs < 0:
		return errors.Errorf("transfer.max_concurrent_jobs must not be negative")
	case cfg.Transfer.MaxConcurrentJobs == 0:
		cfg.Transfer.MaxConcurrentJobs = DefaultMaxConcurrentJobs
	}

	if cfg.Resolve.ExcludedLocations == nil {
		cfg.Resolve.ExcludedLocations = append([]string(nil), DefaultExcludedLocations...)
	}

	return nil
}

// applyEnvironment fills unset connection settings from the variables the
// tracker and mover SDKs conventionally read
func (cfg *Config) applyEnvironment(lookup func(string) (string, bool)) {
	fill := func(dst *string, key string) {
		if *dst != "" {
			return
		}
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	fill(&cfg.Tracker.Server, "FTRACK_SERVER")
	fill(&cfg.Tracker.User, "FTRACK_API_USER")
	fill(&cfg.Mover.Endpoint, "ACCSYN_ENDPOINT")
	fill(&cfg.Mover.Workspace, "ACCSYN_DOMAIN")
	fill(&cfg.Mover.User, "ACCSYN_API_USER")

	if cfg.Tracker.APIKeyEnv == "" {
		cfg.Tracker.APIKeyEnv = "FTRACK_API_KEY"
	}
	if cfg.Mover.APIKeyEnv == "" {
		cfg.Mover.APIKeyEnv = "ACCSYN_API_KEY"
	}
	fill(&cfg.Tracker.APIKey, cfg.Tracker.APIKeyEnv)
	fill(&cfg.Mover.APIKey, cfg.Mover.APIKeyEnv)
}

func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, errors.Errorf("%s must be positive", field)
	}
	return d, nil
}

// PollIntervalDuration returns the parsed poll interval
func (t TransferConfig) PollIntervalDuration() time.Duration {
	if t.pollInterval == 0 {
		return DefaultPollInterval
	}
	return t.pollInterval
}

// JobTimeoutDuration returns the parsed per-job timeout
func (t TransferConfig) JobTimeoutDuration() time.Duration {
	if t.jobTimeout == 0 {
		return DefaultJobTimeout
	}
	return t.jobTimeout
}

// PollErrorBudget returns how many consecutive status query failures a job tolerates
func (t TransferConfig) PollErrorBudget() int {
	if t.MaxPollErrors == nil {
		return DefaultMaxPollErrors
	}
	return *t.MaxPollErrors
}

// AbortTimeoutDuration returns how long a best-effort abort may take
func (t TransferConfig) AbortTimeoutDuration() time.Duration {
	if t.abortTimeout == 0 {
		return DefaultAbortTimeout
	}
	return t.abortTimeout
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s(%s) -> %s(%s)", cfg.Tracker.Provider, cfg.Tracker.Server, cfg.Mover.Provider, cfg.Mover.Endpoint)
}
