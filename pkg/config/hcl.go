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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"concat": stdlib.ConcatFunc,
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Tracker *struct {
			Provider  string `hcl:"provider,optional"`
			Server    string `hcl:"server,optional"`
			User      string `hcl:"user,optional"`
			APIKey    string `hcl:"api_key,optional"`
			APIKeyEnv string `hcl:"api_key_env,optional"`
		} `hcl:"tracker,block"`
		Mover *struct {
			Provider  string `hcl:"provider,optional"`
			Endpoint  string `hcl:"endpoint,optional"`
			Workspace string `hcl:"workspace,optional"`
			User      string `hcl:"user,optional"`
			APIKey    string `hcl:"api_key,optional"`
			APIKeyEnv string `hcl:"api_key_env,optional"`
		} `hcl:"mover,block"`
		Transfer *struct {
			PollInterval      string `hcl:"poll_interval,optional"`
			JobTimeout        string `hcl:"job_timeout,optional"`
			AbortTimeout      string `hcl:"abort_timeout,optional"`
			MaxPollErrors     *int   `hcl:"max_poll_errors,optional"`
			Concurrent        bool   `hcl:"concurrent,optional"`
			MaxConcurrentJobs int    `hcl:"max_concurrent_jobs,optional"`
		} `hcl:"transfer,block"`
		Resolve *struct {
			ProjectRoots      []string `hcl:"project_roots,optional"`
			ExcludedLocations []string `hcl:"excluded_locations,optional"`
			IgnorePatterns    []string `hcl:"ignore_patterns,optional"`
		} `hcl:"resolve,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{}
	if t := hclCfg.Tracker; t != nil {
		cfg.Tracker = TrackerConfig{
			Provider:  t.Provider,
			Server:    t.Server,
			User:      t.User,
			APIKey:    t.APIKey,
			APIKeyEnv: t.APIKeyEnv,
		}
	}
	if m := hclCfg.Mover; m != nil {
		cfg.Mover = MoverConfig{
			Provider:  m.Provider,
			Endpoint:  m.Endpoint,
			Workspace: m.Workspace,
			User:      m.User,
			APIKey:    m.APIKey,
			APIKeyEnv: m.APIKeyEnv,
		}
	}
	if t := hclCfg.Transfer; t != nil {
		cfg.Transfer = TransferConfig{
			PollInterval:      t.PollInterval,
			JobTimeout:        t.JobTimeout,
			AbortTimeout:      t.AbortTimeout,
			MaxPollErrors:     t.MaxPollErrors,
			Concurrent:        t.Concurrent,
			MaxConcurrentJobs: t.MaxConcurrentJobs,
		}
	}
	if r := hclCfg.Resolve; r != nil {
		cfg.Resolve = ResolveConfig{
			ProjectRoots:      r.ProjectRoots,
			ExcludedLocations: r.ExcludedLocations,
			IgnorePatterns:    r.IgnorePatterns,
		}
	}

	return cfg, nil
}
