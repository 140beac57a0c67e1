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

// Package accsyn submits and follows transfer jobs on an accsyn workspace
package accsyn

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func init() {
	mover.Register("accsyn", New)
}

// 🎯 Client talks to the accsyn REST API (/api/v3)
type Client struct {
	endpoint   string
	workspace  string
	user       string
	apiKey     string
	httpClient *http.Client
}

var _ mover.Client = (*Client)(nil)

// 🏭 New creates an accsyn client from configuration
func New(ctx context.Context, cfg config.MoverConfig) (mover.Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.Errorf("accsyn endpoint is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.Errorf("accsyn api key is required (set %s)", cfg.APIKeyEnv)
	}
	return NewClient(cfg.Endpoint, cfg.Workspace, cfg.User, cfg.APIKey, &http.Client{Timeout: time.Minute}), nil
}

// NewClient creates an accsyn client with an explicit http client
func NewClient(endpoint, workspace, user, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		workspace:  workspace,
		user:       user,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Name returns the provider name
func (c *Client) Name() string {
	return "accsyn"
}

type envelope struct {
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message,omitempty"`
}

// do sends one request; the response "result" is decoded into out when non-nil
func (c *Client) do(ctx context.Context, method, path string, body any, header http.Header, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+"/api/v3"+path, reader)
	if err != nil {
		return errors.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.workspace != "" {
		req.Header.Set("X-Accsyn-Workspace", c.workspace)
	}
	req.SetBasicAuth(c.user, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Errorf("calling accsyn: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Errorf("reading accsyn response: %w", err)
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return errors.Errorf("decoding accsyn response (status %d): %w", resp.StatusCode, err)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if env.Message != "" {
			return errors.Errorf("accsyn %s %s: %d %s", method, path, resp.StatusCode, env.Message)
		}
		return errors.Errorf("accsyn %s %s: unexpected status code %d", method, path, resp.StatusCode)
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return errors.Errorf("decoding accsyn result: %w", err)
		}
	}
	return nil
}

// 🌐 Sites returns the site directory of the workspace
func (c *Client) Sites(ctx context.Context) ([]mover.Site, error) {
	var data []struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	if err := c.do(ctx, http.MethodGet, "/site", nil, nil, &data); err != nil {
		return nil, errors.Errorf("listing sites: %w", err)
	}

	out := make([]mover.Site, 0, len(data))
	for _, d := range data {
		out = append(out, mover.Site{ID: d.ID, Name: d.Code})
	}
	return out, nil
}

// 📤 Submit creates a job. The idempotency key lets the server drop a replayed request.
func (c *Client) Submit(ctx context.Context, spec mover.JobSpec) (string, error) {
	header := http.Header{}
	if spec.IdempotencyKey != "" {
		header.Set("Idempotency-Key", spec.IdempotencyKey)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/job", spec, header, &created); err != nil {
		return "", errors.Errorf("creating job: %w", err)
	}
	if created.ID == "" {
		return "", errors.Errorf("creating job: accsyn returned no job id")
	}

	zerolog.Ctx(ctx).Debug().Str("job_id", created.ID).Str("code", spec.Code).Msg("accsyn job created")
	return created.ID, nil
}

type jobData struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Speed    float64 `json:"speed"`
	ETR      string  `json:"etr"`
	Message  string  `json:"message"`
}

type taskData struct {
	Source  string `json:"source"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// 🔍 Status queries a job. Once the job is finished its tasks are inspected so a
// job that moved only some of its files is reported as a partial failure.
func (c *Client) Status(ctx context.Context, jobID string) (mover.JobState, error) {
	var job jobData
	if err := c.do(ctx, http.MethodGet, "/job/"+url.PathEscape(jobID), nil, nil, &job); err != nil {
		return mover.JobState{}, errors.Errorf("querying job %s: %w", jobID, err)
	}

	st, diagnostic := JobStatus(job.Status)
	state := mover.JobState{
		ID:         firstNonEmpty(job.ID, jobID),
		Code:       job.Code,
		Status:     st,
		Diagnostic: firstNonEmpty(job.Message, diagnostic),
		Percent:    job.Progress,
		SpeedMBs:   job.Speed,
		ETR:        job.ETR,
	}
	if !st.IsMoverTerminal() {
		return state, nil
	}

	var tasks []taskData
	if err := c.do(ctx, http.MethodGet, "/job/"+url.PathEscape(jobID)+"/task", nil, nil, &tasks); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("job_id", jobID).Msg("task listing unavailable, reporting job status only")
		return state, nil
	}

	done, failed := 0, 0
	for _, t := range tasks {
		fs := mover.FileState{Path: taskPath(t.Source), Status: TaskStatus(t.Status), Diagnostic: t.Message}
		switch fs.Status {
		case status.StatusSucceeded:
			done++
		case status.StatusFailed:
			failed++
		}
		state.Files = append(state.Files, fs)
	}
	if done > 0 && failed > 0 {
		state.Status = status.StatusPartialFailure
		state.Diagnostic = firstNonEmpty(state.Diagnostic, "some files failed to transfer")
	}
	return state, nil
}

// 🛑 Abort asks accsyn to abandon a job
func (c *Client) Abort(ctx context.Context, jobID string) error {
	if err := c.do(ctx, http.MethodPost, "/job/"+url.PathEscape(jobID)+"/abort", nil, nil, nil); err != nil {
		return errors.Errorf("aborting job %s: %w", jobID, err)
	}
	return nil
}

// JobStatus maps an accsyn job status onto the transfer lifecycle
func JobStatus(s string) (status.Status, string) {
	switch strings.ToLower(s) {
	case "queued", "init", "booting", "pending":
		return status.StatusPending, ""
	case "executing", "running", "paused":
		return status.StatusRunning, ""
	case "done":
		return status.StatusSucceeded, ""
	case "failed":
		return status.StatusFailed, ""
	case "aborted":
		return status.StatusFailed, "job was aborted on accsyn"
	default:
		return status.StatusUnknown, ""
	}
}

// TaskStatus maps an accsyn task status
func TaskStatus(s string) status.Status {
	switch strings.ToLower(s) {
	case "done":
		return status.StatusSucceeded
	case "failed", "aborted", "excluded":
		return status.StatusFailed
	default:
		return status.StatusRunning
	}
}

// taskPath strips the "site=NAME:" prefix of a task endpoint
func taskPath(endpoint string) string {
	rest, ok := strings.CutPrefix(endpoint, "site=")
	if !ok {
		return endpoint
	}
	if _, path, found := strings.Cut(rest, ":"); found {
		return path
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
