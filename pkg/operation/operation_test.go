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

package operation

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/accsend/gen/mockery"
	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/log"
	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/report"
	"github.com/walteh/accsend/pkg/resolve"
	"github.com/walteh/accsend/pkg/status"
	"github.com/walteh/accsend/pkg/tracker"
	"gitlab.com/tozd/go/errors"
)

var (
	sites     = []mover.Site{{ID: "s-ny", Name: "NY"}, {ID: "s-la", Name: "LA"}}
	selection = []tracker.Selection{{EntityType: tracker.EntityProject, EntityID: "p1"}}
)

func testConfig(t *testing.T, mod func(cfg *config.Config)) *config.Config {
	cfg := &config.Config{
		Tracker:  config.TrackerConfig{Server: "https://studio.ftrackapp.com", APIKey: "k"},
		Mover:    config.MoverConfig{Endpoint: "https://studio.accsyn.com", APIKey: "k"},
		Transfer: config.TransferConfig{PollInterval: "1ms", JobTimeout: "5s", AbortTimeout: "1s"},
		Resolve:  config.ResolveConfig{IgnorePatterns: []string{"ftrackreview-*"}},
	}
	if mod != nil {
		mod(cfg)
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

type fixture struct {
	tracker *mockery.MockClient_tracker
	mover   *mockery.MockClient_mover
	console *bytes.Buffer
	op      Operator
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		tracker: mockery.NewMockClient_tracker(t),
		mover:   mockery.NewMockClient_mover(t),
		console: &bytes.Buffer{},
	}
	logger := zerolog.New(zerolog.NewTestWriter(t))
	op, err := New(Options{
		Config:   testConfig(t, nil),
		Tracker:  f.tracker,
		Mover:    f.mover,
		Progress: status.NewTracker(&logger),
		Console:  log.New(f.console, zerolog.InfoLevel),
	})
	require.NoError(t, err)
	f.op = op
	return f
}

func (f *fixture) harvest(components ...tracker.Component) {
	f.tracker.EXPECT().Components(mock.Anything, selection, mock.Anything).Return(components, nil).Once()
}

func outcomes(rep *report.Report) []report.Outcome {
	out := make([]report.Outcome, 0, len(rep.Records))
	for _, rec := range rep.Records {
		out = append(out, rec.Outcome)
	}
	return out
}

func TestSendSucceeds(t *testing.T) {
	f := newFixture(t)
	f.harvest(
		tracker.Component{ID: "c1", Name: "main", LocationName: "NY", Path: "show01/assets/render.geo", ProjectCode: "show01"},
		tracker.Component{ID: "c2", Name: "cache", LocationName: tracker.UnmanagedLocation, Path: `P:\show01\assets\cache.abc`, ProjectCode: "show01"},
	)
	f.mover.EXPECT().Sites(mock.Anything).Return(sites, nil).Once()
	f.mover.EXPECT().Submit(mock.Anything, mock.MatchedBy(func(spec mover.JobSpec) bool {
		return spec.Code == "Transfer of 2 component(s) from NY to LA" &&
			len(spec.Tasks) == 2 &&
			spec.Tasks[0] == mover.Task{Source: "site=NY:show01/assets/render.geo", Destination: "site=LA"} &&
			spec.Tasks[1] == mover.Task{Source: "site=NY:show01/assets/cache.abc", Destination: "site=LA"} &&
			spec.IdempotencyKey != ""
	})).Return("j1", nil).Once()
	f.mover.EXPECT().Status(mock.Anything, "j1").Return(mover.JobState{ID: "j1", Status: status.StatusSucceeded, Percent: 100, SpeedMBs: 12.5}, nil).Once()

	rep, err := f.op.Send(testContext(t), Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "LA"})
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.True(t, rep.Success)
	assert.Equal(t, []report.Outcome{report.OutcomeSucceeded, report.OutcomeSucceeded}, outcomes(rep))
	assert.Equal(t, []string{"j1"}, rep.JobIDs)
	assert.Contains(t, f.console.String(), "[sending to LA]")
	assert.Contains(t, f.console.String(), "last seen at 12.5 MB/s")
}

func TestSendDestinationNotMapped(t *testing.T) {
	f := newFixture(t)
	f.harvest(
		tracker.Component{ID: "c1", LocationName: "NY", Path: "show01/a.geo", ProjectCode: "show01"},
		tracker.Component{ID: "c2", LocationName: "NY", Path: "show01/b.geo", ProjectCode: "show01"},
	)
	f.mover.EXPECT().Sites(mock.Anything).Return([]mover.Site{{ID: "s-ny", Name: "NY"}}, nil).Once()

	rep, err := f.op.Send(testContext(t), Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "LA"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, resolve.ErrLocationNotMapped))

	require.NotNil(t, rep, "every component is still reported")
	assert.Equal(t, []report.Outcome{report.OutcomeLocationNotMapped, report.OutcomeLocationNotMapped}, outcomes(rep))
	assert.Empty(t, rep.JobIDs)
}

func TestSendReportsEveryUnmappedEndpoint(t *testing.T) {
	f := newFixture(t)
	f.harvest(tracker.Component{ID: "c1", LocationName: "TOKYO", Path: "show01/a.geo", ProjectCode: "show01"})
	f.mover.EXPECT().Sites(mock.Anything).Return([]mover.Site{{ID: "s-ny", Name: "NY"}}, nil).Once()

	rep, err := f.op.Send(testContext(t), Request{Selection: selection, SourceLocation: "TOKYO", DestinationLocation: "LA"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, resolve.ErrLocationNotMapped))
	assert.Contains(t, err.Error(), "LA, TOKYO")

	require.NotNil(t, rep)
	assert.Equal(t, []report.Outcome{report.OutcomeLocationNotMapped}, outcomes(rep))
}

func TestSendIsolatesResolutionFailures(t *testing.T) {
	f := newFixture(t)
	f.harvest(
		tracker.Component{ID: "c1", Name: "good", LocationName: "NY", Path: `P:\show01\assets\a.geo`, ProjectCode: "show01"},
		tracker.Component{ID: "c2", Name: "elsewhere", LocationName: "NY", Path: `P:\other\render.geo`, ProjectCode: "show01"},
		tracker.Component{ID: "c3", Name: "ftrackreview-mp4", LocationName: "NY", Path: `P:\show01\review\a.mp4`, ProjectCode: "show01"},
		tracker.Component{ID: "c4", Name: "escape", LocationName: "NY", Path: `P:\show01\..\x.geo`, ProjectCode: "show01"},
	)
	f.mover.EXPECT().Sites(mock.Anything).Return(sites, nil).Once()
	f.mover.EXPECT().Submit(mock.Anything, mock.MatchedBy(func(spec mover.JobSpec) bool {
		return len(spec.Tasks) == 1
	})).Return("j1", nil).Once()
	f.mover.EXPECT().Status(mock.Anything, "j1").Return(mover.JobState{Status: status.StatusSucceeded}, nil).Once()

	rep, err := f.op.Send(testContext(t), Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "LA"})
	require.NoError(t, err)

	assert.Equal(t, []report.Outcome{
		report.OutcomeSucceeded,
		report.OutcomeProjectCodeNotFound,
		report.OutcomeSkipped,
		report.OutcomePathEscapesProject,
	}, outcomes(rep))
	assert.Equal(t, report.SeverityWarning, rep.Severity)
}

func TestSendDuplicatePathsTransferOnce(t *testing.T) {
	f := newFixture(t)
	f.harvest(
		tracker.Component{ID: "c1", LocationName: "NY", Path: "show01/assets/a.geo", ProjectCode: "show01"},
		tracker.Component{ID: "c2", LocationName: tracker.UnmanagedLocation, Path: `P:\show01\assets\a.geo`, ProjectCode: "show01"},
		tracker.Component{ID: "c1", LocationName: "NY", Path: "show01/assets/a.geo", ProjectCode: "show01"},
	)
	f.mover.EXPECT().Sites(mock.Anything).Return(sites, nil).Once()
	f.mover.EXPECT().Submit(mock.Anything, mock.MatchedBy(func(spec mover.JobSpec) bool {
		return len(spec.Tasks) == 1
	})).Return("j1", nil).Once()
	f.mover.EXPECT().Status(mock.Anything, "j1").Return(mover.JobState{Status: status.StatusSucceeded}, nil).Once()

	rep, err := f.op.Send(testContext(t), Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "LA"})
	require.NoError(t, err)
	assert.Equal(t, []report.Outcome{report.OutcomeSucceeded, report.OutcomeSucceeded}, outcomes(rep))
	assert.Contains(t, f.console.String(), "DUPLICATE")
}

func TestSendPerComponentSource(t *testing.T) {
	f := newFixture(t)
	f.harvest(
		tracker.Component{ID: "c1", LocationName: "NY", Path: "show01/a.geo", ProjectCode: "show01"},
		tracker.Component{ID: "c2", LocationName: "LA", Path: "show01/b.geo", ProjectCode: "show01"},
		tracker.Component{ID: "c3", LocationName: "LDN", Path: "show01/c.geo", ProjectCode: "show01"},
	)
	f.mover.EXPECT().Sites(mock.Anything).Return(sites, nil).Once()
	f.mover.EXPECT().Submit(mock.Anything, mock.MatchedBy(func(spec mover.JobSpec) bool {
		return spec.Code == "Transfer of 1 component(s) from NY to LA"
	})).Return("j1", nil).Once()
	f.mover.EXPECT().Status(mock.Anything, "j1").Return(mover.JobState{Status: status.StatusSucceeded}, nil).Once()

	rep, err := f.op.Send(testContext(t), Request{Selection: selection, DestinationLocation: "LA"})
	require.NoError(t, err)
	assert.Equal(t, []report.Outcome{
		report.OutcomeSucceeded,
		report.OutcomeSkipped,
		report.OutcomeLocationNotMapped,
	}, outcomes(rep))
	assert.Equal(t, "component locations", rep.Source)
}

func TestSendCancelledKeepsEveryComponent(t *testing.T) {
	f := newFixture(t)
	f.harvest(
		tracker.Component{ID: "c1", Name: "plate", LocationName: "NY", Path: "show01/plates/a.exr", ProjectCode: "show01"},
		tracker.Component{ID: "c2", Name: "stray", LocationName: "NY", Path: "elsewhere/b.exr", ProjectCode: "show01"},
		tracker.Component{ID: "c3", Name: "cache", LocationName: "NY", Path: "show02/cache/c.abc", ProjectCode: "show02"},
	)

	ctx, cancel := context.WithCancel(testContext(t))
	defer cancel()

	f.mover.EXPECT().Sites(mock.Anything).Return(sites, nil).Once()
	f.mover.EXPECT().Submit(mock.Anything, mock.Anything).RunAndReturn(func(context.Context, mover.JobSpec) (string, error) {
		cancel()
		return "j1", nil
	}).Once()
	f.mover.EXPECT().Abort(mock.Anything, "j1").Return(nil).Once()

	rep, err := f.op.Send(ctx, Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "LA"})
	require.NoError(t, err)
	require.NotNil(t, rep, "a cancelled run still produces its report")

	assert.Equal(t, []report.Outcome{
		report.OutcomeCancelled,
		report.OutcomeProjectCodeNotFound,
		report.OutcomeCancelled,
	}, outcomes(rep))
	assert.False(t, rep.Success)
	assert.Equal(t, []string{"j1"}, rep.JobIDs)
	assert.Contains(t, f.console.String(), "j1 cancelled: run cancelled, job abort requested")
}

func TestSendRejectsBeforeHarvest(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "same_location",
			req:     Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "NY"},
			wantErr: resolve.ErrSameLocation,
		},
		{
			name:    "empty_destination",
			req:     Request{Selection: selection, SourceLocation: "NY"},
			wantErr: resolve.ErrEmptyLocationName,
		},
		{
			name:    "internal_destination",
			req:     Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "ftrack.server"},
			wantErr: resolve.ErrExcludedLocation,
		},
		{
			name:    "internal_source",
			req:     Request{Selection: selection, SourceLocation: "ftrack.unmanaged", DestinationLocation: "LA"},
			wantErr: resolve.ErrExcludedLocation,
		},
		{
			name: "empty_selection",
			req:  Request{SourceLocation: "NY", DestinationLocation: "LA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rep, err := f.op.Send(testContext(t), tt.req)
			require.Error(t, err)
			assert.Nil(t, rep)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
			}
		})
	}
}

func TestSendCollaboratorFailures(t *testing.T) {
	t.Run("harvest_fails", func(t *testing.T) {
		f := newFixture(t)
		f.tracker.EXPECT().Components(mock.Anything, selection, mock.Anything).Return(nil, errors.New("401 unauthorized")).Once()

		rep, err := f.op.Send(testContext(t), Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "LA"})
		require.Error(t, err)
		assert.Nil(t, rep)
		assert.Contains(t, err.Error(), "harvesting components")
	})

	t.Run("site_directory_unreachable", func(t *testing.T) {
		f := newFixture(t)
		f.harvest(tracker.Component{ID: "c1", LocationName: "NY", Path: "show01/a.geo", ProjectCode: "show01"})
		f.mover.EXPECT().Sites(mock.Anything).Return(nil, errors.New("connection refused")).Once()

		rep, err := f.op.Send(testContext(t), Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "LA"})
		require.Error(t, err)
		assert.Nil(t, rep)
		assert.False(t, errors.Is(err, resolve.ErrLocationNotMapped))
	})
}

func TestSendPassesHarvestOptions(t *testing.T) {
	f := newFixture(t)
	f.tracker.EXPECT().Components(mock.Anything, selection, mock.MatchedBy(func(opts tracker.HarvestOptions) bool {
		return opts.SourceLocation == "NY" && len(opts.ExcludedLocations) == len(config.DefaultExcludedLocations)
	})).Return([]tracker.Component{}, nil).Once()
	f.mover.EXPECT().Sites(mock.Anything).Return(sites, nil).Once()

	rep, err := f.op.Send(testContext(t), Request{Selection: selection, SourceLocation: "NY", DestinationLocation: "LA"})
	require.NoError(t, err)
	assert.Empty(t, rep.Records)
	assert.Equal(t, "Nothing to transfer", rep.Message)
}

func TestLocations(t *testing.T) {
	f := newFixture(t)
	f.tracker.EXPECT().Locations(mock.Anything).Return([]tracker.Location{
		{ID: "1", Name: "ftrack.server"},
		{ID: "2", Name: "NY"},
		{ID: "3", Name: "LDN"},
		{ID: "4", Name: "ftrack.unmanaged"},
	}, nil).Once()
	f.mover.EXPECT().Sites(mock.Anything).Return(sites, nil).Once()

	got, err := f.op.Locations(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []Location{
		{Name: "NY", Mapped: true, SiteID: "s-ny"},
		{Name: "LDN"},
	}, got)
}

func TestNew(t *testing.T) {
	cfg := testConfig(t, nil)
	tc := mockery.NewMockClient_tracker(t)
	mc := mockery.NewMockClient_mover(t)

	tests := []struct {
		name   string
		opts   Options
		errMsg string
	}{
		{name: "missing_config", opts: Options{Tracker: tc, Mover: mc}, errMsg: "config is required"},
		{name: "missing_tracker", opts: Options{Config: cfg, Mover: mc}, errMsg: "tracker client is required"},
		{name: "missing_mover", opts: Options{Config: cfg, Tracker: tc}, errMsg: "mover client is required"},
		{
			name:   "bad_ignore_pattern",
			opts:   Options{Config: testConfig(t, func(c *config.Config) { c.Resolve.IgnorePatterns = []string{"[x"} }), Tracker: tc, Mover: mc},
			errMsg: "creating path resolver",
		},
		{name: "valid", opts: Options{Config: cfg, Tracker: tc, Mover: mc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := New(tt.opts)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, op)
		})
	}
}
