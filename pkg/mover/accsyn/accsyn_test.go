package accsyn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/resolve"
	"github.com/walteh/accsend/pkg/status"
	"github.com/walteh/accsend/pkg/tracker"
	"github.com/walteh/accsend/pkg/transfer"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func newTestClient(t *testing.T, routes map[string]http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			user, key, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "jane", user)
			assert.Equal(t, "secret", key)
			assert.Equal(t, "studio", r.Header.Get("X-Accsyn-Workspace"))
			assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
			h(w, r)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "studio", "jane", "secret", srv.Client())
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestSites(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"GET /api/v3/site": reply(`{"result":[{"id":"s1","code":"NY"},{"id":"s2","code":"LA"}]}`),
	})

	got, err := c.Sites(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []mover.Site{{ID: "s1", Name: "NY"}, {ID: "s2", Name: "LA"}}, got)
}

func TestSubmit(t *testing.T) {
	spec := mover.JobSpec{
		Code:           "Transfer of 1 component(s) from NY to LA",
		Tasks:          []mover.Task{{Source: "site=NY:show01/a.geo", Destination: "site=LA"}},
		MirrorPaths:    true,
		IdempotencyKey: "abc123",
	}

	c := newTestClient(t, map[string]http.HandlerFunc{
		"POST /api/v3/job": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "abc123", r.Header.Get("Idempotency-Key"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, spec.Code, body["code"])
			assert.Equal(t, true, body["mirror_paths"])
			assert.NotContains(t, body, "IdempotencyKey")

			_, _ = w.Write([]byte(`{"result":{"id":"j1"}}`))
		},
	})

	id, err := c.Submit(testContext(t), spec)
	require.NoError(t, err)
	assert.Equal(t, "j1", id)
}

func TestSubmitRejected(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"POST /api/v3/job": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"unknown site LA"}`))
		},
	})

	_, err := c.Submit(testContext(t), mover.JobSpec{Code: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown site LA")
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name      string
		job       string
		tasks     string
		want      status.Status
		wantFiles int
		wantDiag  string
	}{
		{
			name: "running",
			job:  `{"result":{"id":"j1","code":"c","status":"executing","progress":42,"speed":8.5,"etr":"00:03:00"}}`,
			want: status.StatusRunning,
		},
		{
			name:      "done",
			job:       `{"result":{"id":"j1","status":"done","progress":100}}`,
			tasks:     `{"result":[{"source":"site=NY:show01/a.geo","status":"done"}]}`,
			want:      status.StatusSucceeded,
			wantFiles: 1,
		},
		{
			name:      "done_with_failed_tasks",
			job:       `{"result":{"id":"j1","status":"done"}}`,
			tasks:     `{"result":[{"source":"site=NY:show01/a.geo","status":"done"},{"source":"site=NY:show01/b.geo","status":"failed","message":"permission denied"}]}`,
			want:      status.StatusPartialFailure,
			wantFiles: 2,
			wantDiag:  "some files failed",
		},
		{
			name: "done_without_task_listing",
			job:  `{"result":{"id":"j1","status":"done","progress":100}}`,
			want: status.StatusSucceeded,
		},
		{
			name:     "failed_without_task_listing",
			job:      `{"result":{"id":"j1","status":"failed","message":"site offline"}}`,
			want:     status.StatusFailed,
			wantDiag: "site offline",
		},
		{
			name:     "aborted",
			job:      `{"result":{"id":"j1","status":"aborted"}}`,
			tasks:    `{"result":[]}`,
			want:     status.StatusFailed,
			wantDiag: "aborted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes := map[string]http.HandlerFunc{
				"GET /api/v3/job/j1": reply(tt.job),
			}
			if tt.tasks != "" {
				routes["GET /api/v3/job/j1/task"] = reply(tt.tasks)
			}

			got, err := newTestClient(t, routes).Status(testContext(t), "j1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, "j1", got.ID)
			assert.Len(t, got.Files, tt.wantFiles)
			if tt.wantDiag != "" {
				assert.Contains(t, got.Diagnostic, tt.wantDiag)
			}
		})
	}
}

func TestStatusFiles(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"GET /api/v3/job/j1":      reply(`{"result":{"status":"failed"}}`),
		"GET /api/v3/job/j1/task": reply(`{"result":[{"source":"site=NY:show01/b.geo","status":"failed","message":"checksum mismatch"}]}`),
	})

	got, err := c.Status(testContext(t), "j1")
	require.NoError(t, err)
	assert.Equal(t, status.StatusFailed, got.Status)
	assert.Equal(t, []mover.FileState{{Path: "show01/b.geo", Status: status.StatusFailed, Diagnostic: "checksum mismatch"}}, got.Files)
}

func TestFinishedJobSurvivesTaskListingOutage(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"POST /api/v3/job":   reply(`{"result":{"id":"j1"}}`),
		"GET /api/v3/job/j1": reply(`{"result":{"id":"j1","status":"done"}}`),
	})

	orch, err := transfer.NewOrchestrator(transfer.Options{Client: c, PollInterval: time.Millisecond, JobTimeout: 5 * time.Second})
	require.NoError(t, err)

	jobs := transfer.BuildJobs(mover.Site{ID: "s-ny", Name: "NY"}, []transfer.ResolvedComponent{{
		Component:   tracker.Component{ID: "c1", ProjectCode: "show01"},
		Path:        resolve.RelativePath{ProjectCode: "show01", Path: "a.geo"},
		Destination: mover.Site{ID: "s-la", Name: "LA"},
	}})

	results := orch.Run(testContext(t), jobs)
	require.Len(t, results, 1)
	assert.Equal(t, status.StatusSucceeded, results[0].Status)
	assert.NoError(t, results[0].Err)
	assert.Empty(t, results[0].Files)
}

func TestAbort(t *testing.T) {
	called := false
	c := newTestClient(t, map[string]http.HandlerFunc{
		"POST /api/v3/job/j1/abort": func(w http.ResponseWriter, r *http.Request) {
			called = true
			_, _ = w.Write([]byte(`{"result":{}}`))
		},
	})

	require.NoError(t, c.Abort(testContext(t), "j1"))
	assert.True(t, called)
}

func TestJobStatus(t *testing.T) {
	tests := map[string]status.Status{
		"queued":    status.StatusPending,
		"init":      status.StatusPending,
		"booting":   status.StatusPending,
		"executing": status.StatusRunning,
		"paused":    status.StatusRunning,
		"done":      status.StatusSucceeded,
		"failed":    status.StatusFailed,
		"aborted":   status.StatusFailed,
		"weird":     status.StatusUnknown,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, _ := JobStatus(in)
			assert.Equal(t, want, got)
		})
	}
}

func TestTaskPath(t *testing.T) {
	assert.Equal(t, "show01/a.geo", taskPath("site=NY:show01/a.geo"))
	assert.Equal(t, "", taskPath("site=LA"))
	assert.Equal(t, "show01/a.geo", taskPath("show01/a.geo"))
}

func TestRegistered(t *testing.T) {
	c, err := mover.New(context.Background(), config.MoverConfig{Provider: "accsyn", Endpoint: "https://studio.accsyn.com", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "accsyn", c.Name())

	_, err = mover.New(context.Background(), config.MoverConfig{Provider: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "options: accsyn")
}
