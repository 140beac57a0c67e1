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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	pathIndent  = 4  // spaces to indent component entries
	pathWidth   = 35 // Base width for the relative path
	typeWidth   = 15 // Width for the location kind
	statusWidth = 15 // Width for status text
)

// 🎯 ComponentOperation represents a component being routed into a job
type ComponentOperation struct {
	Name        string // Component name
	Path        string // Relative path beneath the project
	Type        string // Location kind (managed/unmanaged)
	Status      string // Routing status
	IsQueued    bool   // Whether the path was added to the job
	IsDuplicate bool   // Whether the path was already part of the job
	IsRejected  bool   // Whether resolution failed
	IsSkipped   bool   // Whether an ignore pattern matched
}

// 📦 JobOperation represents a transfer job for logging
type JobOperation struct {
	Code        string // Mover job code
	Project     string // Project code
	Source      string // Source site
	Destination string // Destination site
	Paths       int    // Number of unique paths
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *JobOperation
	operations []ComponentOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatComponentOperation formats a component operation for display
func (l *Logger) formatComponentOperation(op ComponentOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsRejected:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsQueued:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsDuplicate:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	// Format type with color
	var typeColor color.Attribute
	switch op.Type {
	case "managed":
		typeColor = color.FgCyan
	case "unmanaged":
		typeColor = color.FgYellow
	default:
		typeColor = color.FgBlue
	}

	path := op.Path
	if path == "" {
		path = op.Name
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", pathIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", pathWidth, path),
		color.New(typeColor).Sprint(fmt.Sprintf("%-*s", typeWidth, op.Type)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogComponentOperation logs a component operation
func (l *Logger) LogComponentOperation(ctx context.Context, op ComponentOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to operations list
	l.operations = append(l.operations, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatComponentOperation(op))

	// Log to zerolog
	l.zlog.Debug().
		Str("component", op.Name).
		Str("path", op.Path).
		Str("type", op.Type).
		Str("status", op.Status).
		Bool("is_queued", op.IsQueued).
		Bool("is_duplicate", op.IsDuplicate).
		Bool("is_rejected", op.IsRejected).
		Bool("is_skipped", op.IsSkipped).
		Msg("component operation")
}

// 📝 StartJobOperation starts a new job operation
func (l *Logger) StartJobOperation(ctx context.Context, op JobOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	// Print job header
	fmt.Fprintf(l.console, "[sending to %s]\n",
		color.New(color.FgCyan).Sprint(op.Destination))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Project),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Source))

	// Log to zerolog
	l.zlog.Info().
		Str("code", op.Code).
		Str("project", op.Project).
		Str("source", op.Source).
		Str("destination", op.Destination).
		Int("paths", op.Paths).
		Msg("starting job operation")
}

// 📝 EndJobOperation ends the current job operation
func (l *Logger) EndJobOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	// Log summary
	l.zlog.Info().
		Str("code", l.currentOp.Code).
		Int("components", len(l.operations)).
		Msg("job operation complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	appText := color.New(color.Bold, color.FgCyan).Sprint("accsend")
	fmt.Fprintf(l.console, "\n%s %s\n\n", appText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
