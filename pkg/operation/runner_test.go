package operation

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/accsend/pkg/report"
	"gitlab.com/tozd/go/errors"
)

func TestRunner(t *testing.T) {
	want := &report.Report{Success: true, Message: "done"}

	tests := []struct {
		name    string
		op      Operation
		wantErr bool
	}{
		{
			name: "report",
			op:   func(context.Context) (*report.Report, error) { return want, nil },
		},
		{
			name:    "error",
			op:      func(context.Context) (*report.Report, error) { return nil, errors.New("boom") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zerolog.New(zerolog.NewTestWriter(t))
			r := NewRunner(&logger)

			got, err := r.Run(context.Background(), tt.op)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "executing operation")
				return
			}
			require.NoError(t, err)
			assert.Same(t, want, got)
		})
	}
}

func TestRunnerCancelledWaitsForPartialReport(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	r := NewRunner(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	partial := &report.Report{Message: "partial"}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	got, err := r.Run(ctx, func(ctx context.Context) (*report.Report, error) {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return partial, nil
	})
	require.NoError(t, err)
	assert.Same(t, partial, got, "the partial report must not be dropped")
}

func TestHandle(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	h := NewRunner(&logger).Start(context.Background(), func(context.Context) (*report.Report, error) {
		return &report.Report{Message: "bg"}, nil
	})

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("operation did not finish")
	}

	rep, err := h.Wait()
	require.NoError(t, err)
	assert.Equal(t, "bg", rep.Message)
}
