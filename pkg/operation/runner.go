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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/accsend/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// Operation is a unit of work that produces a report
type Operation func(ctx context.Context) (*report.Report, error)

// 🏃 OperationRunner executes operations in the background and hands their
// result back to the caller, also after the caller's context was cancelled
type OperationRunner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	return &OperationRunner{
		logger: logger,
	}
}

// 🎫 Handle tracks an operation running in the background
type Handle struct {
	done chan struct{}
	rep  *report.Report
	err  error
}

// Done is closed once the operation returned
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the operation returned and hands back its result
func (h *Handle) Wait() (*report.Report, error) {
	<-h.done
	return h.rep, h.err
}

// 🚀 Start launches an operation in the background
func (r *OperationRunner) Start(ctx context.Context, op Operation) *Handle {
	h := &Handle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		rep, err := op(ctx)
		if err != nil {
			err = errors.Errorf("executing operation: %w", err)
		}
		h.rep, h.err = rep, err
	}()
	return h
}

// 🏃 Run executes an operation and waits for it. A cancelled context does not
// drop the result: the operation is expected to wind down and hand back a partial report.
func (r *OperationRunner) Run(ctx context.Context, op Operation) (*report.Report, error) {
	h := r.Start(ctx, op)
	r.logger.Debug().Msg("operation started")

	select {
	case <-h.Done():
	case <-ctx.Done():
		r.logger.Warn().Err(ctx.Err()).Msg("operation cancelled, waiting for partial report")
	}
	return h.Wait()
}
