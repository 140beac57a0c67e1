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

// Package ftrack reads locations and components from an ftrack server over its REST API
package ftrack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/tracker"
	"gitlab.com/tozd/go/errors"
)

func init() {
	tracker.Register("ftrack", New)
}

const componentProjection = "select id, name, version.asset.parent.project.name, " +
	"component_locations.location.name, component_locations.resource_identifier from Component"

// 🎯 Client talks to the ftrack REST endpoint (POST <server>/api)
type Client struct {
	server     string
	user       string
	apiKey     string
	httpClient *http.Client
}

var _ tracker.Client = (*Client)(nil)

// 🏭 New creates an ftrack client from configuration
func New(ctx context.Context, cfg config.TrackerConfig) (tracker.Client, error) {
	if cfg.Server == "" {
		return nil, errors.Errorf("ftrack server is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.Errorf("ftrack api key is required (set %s)", cfg.APIKeyEnv)
	}
	return NewClient(cfg.Server, cfg.User, cfg.APIKey, &http.Client{Timeout: time.Minute}), nil
}

// NewClient creates an ftrack client with an explicit http client
func NewClient(server, user, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		server:     strings.TrimRight(server, "/"),
		user:       user,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Name returns the provider name
func (c *Client) Name() string {
	return "ftrack"
}

type operation struct {
	Action     string `json:"action"`
	Expression string `json:"expression"`
}

type operationResult struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type serverError struct {
	Exception string `json:"exception"`
	Content   string `json:"content"`
}

// call sends a batch of operations and returns one result per operation
func (c *Client) call(ctx context.Context, ops ...operation) ([]operationResult, error) {
	body, err := json.Marshal(ops)
	if err != nil {
		return nil, errors.Errorf("encoding operations: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+"/api", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("ftrack-user", c.user)
	req.Header.Set("ftrack-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Errorf("calling ftrack: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Errorf("reading ftrack response: %w", err)
	}

	// errors come back as an object, results as an array
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var serr serverError
		if err := json.Unmarshal(trimmed, &serr); err == nil && serr.Exception != "" {
			return nil, errors.Errorf("ftrack %s: %s", serr.Exception, serr.Content)
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var results []operationResult
	if err := json.Unmarshal(trimmed, &results); err != nil {
		return nil, errors.Errorf("decoding ftrack response: %w", err)
	}
	if len(results) != len(ops) {
		return nil, errors.Errorf("ftrack returned %d results for %d operations", len(results), len(ops))
	}
	return results, nil
}

// query runs one expression and decodes its data into out
func (c *Client) query(ctx context.Context, expression string, out any) error {
	zerolog.Ctx(ctx).Debug().Str("expression", expression).Msg("ftrack query")

	results, err := c.call(ctx, operation{Action: "query", Expression: expression})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(results[0].Data, out); err != nil {
		return errors.Errorf("decoding query data: %w", err)
	}
	return nil
}

// 📍 Locations returns every location registered on the server
func (c *Client) Locations(ctx context.Context) ([]tracker.Location, error) {
	var data []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.query(ctx, "select id, name from Location", &data); err != nil {
		return nil, errors.Errorf("listing locations: %w", err)
	}

	out := make([]tracker.Location, 0, len(data))
	for _, d := range data {
		out = append(out, tracker.Location{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

type componentData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version *struct {
		Asset *struct {
			Parent *struct {
				Project *struct {
					Name string `json:"name"`
				} `json:"project"`
			} `json:"parent"`
		} `json:"asset"`
	} `json:"version"`
	ComponentLocations []struct {
		Location *struct {
			Name string `json:"name"`
		} `json:"location"`
		ResourceIdentifier *string `json:"resource_identifier"`
	} `json:"component_locations"`
}

func (d componentData) projectCode() string {
	if d.Version == nil || d.Version.Asset == nil || d.Version.Asset.Parent == nil || d.Version.Asset.Parent.Project == nil {
		return ""
	}
	return d.Version.Asset.Parent.Project.Name
}

// path picks the location a component path is read from: the requested source
// first, then the first usable location that has one
func (d componentData) path(opts tracker.HarvestOptions) (string, string) {
	type candidate struct{ location, path string }
	candidates := make([]candidate, 0, len(d.ComponentLocations))
	for _, cl := range d.ComponentLocations {
		if cl.Location == nil || cl.ResourceIdentifier == nil || strings.TrimSpace(*cl.ResourceIdentifier) == "" {
			continue
		}
		if !opts.Usable(cl.Location.Name) {
			continue
		}
		candidates = append(candidates, candidate{cl.Location.Name, *cl.ResourceIdentifier})
	}

	for _, c := range candidates {
		if c.location == opts.SourceLocation {
			return c.location, c.path
		}
	}
	if len(candidates) > 0 {
		return candidates[0].location, candidates[0].path
	}
	return "", ""
}

// filter returns the Component where-clause for a selected entity
func filter(sel tracker.Selection) (string, error) {
	if strings.ContainsAny(sel.EntityID, `"\`) {
		return "", errors.Errorf("invalid entity id %q", sel.EntityID)
	}
	id := sel.EntityID

	switch sel.EntityType {
	case tracker.EntityProject:
		return fmt.Sprintf(`version.asset.parent.project_id is "%s"`, id), nil
	case tracker.EntityList:
		return fmt.Sprintf(`version.lists any (id is "%s")`, id), nil
	default:
		// shot, asset build, sequence, episode, task or version
		return fmt.Sprintf(`version.asset.parent.id is "%[1]s" or version.asset.parent.parent.id is "%[1]s"`+
			` or version.asset.parent.parent.parent.id is "%[1]s" or version.task.id is "%[1]s" or version.id is "%[1]s"`, id), nil
	}
}

// 📦 Components harvests every component beneath the selected entities, in
// selection order, with the path taken from the preferred location
func (c *Client) Components(ctx context.Context, selection []tracker.Selection, opts tracker.HarvestOptions) ([]tracker.Component, error) {
	logger := zerolog.Ctx(ctx)
	out := make([]tracker.Component, 0)

	for _, sel := range selection {
		where, err := filter(sel)
		if err != nil {
			return nil, err
		}

		var data []componentData
		if err := c.query(ctx, componentProjection+" where "+where, &data); err != nil {
			return nil, errors.Errorf("harvesting components of %s %s: %w", sel.EntityType, sel.EntityID, err)
		}

		logger.Debug().
			Str("entity_type", string(sel.EntityType)).
			Str("entity_id", sel.EntityID).
			Int("components", len(data)).
			Msg("harvested components")

		for _, d := range data {
			location, path := d.path(opts)
			out = append(out, tracker.Component{
				ID:           d.ID,
				Name:         d.Name,
				LocationName: location,
				Path:         path,
				ProjectCode:  d.projectCode(),
			})
		}
	}

	return out, nil
}
