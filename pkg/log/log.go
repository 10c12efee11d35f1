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
	"github.com/walteh/apifix/pkg/status"
)

// 🎯 FileOperation represents the outcome for one target
type FileOperation struct {
	Path         string            // File path as given or resolved
	Status       status.FileStatus // What happened to the file
	Replacements int               // Number of calls rewritten
	DryRun       bool              // Whether the write was skipped on purpose
	Err          error             // Error for failed targets
}

// 🎯 Logger writes user-facing lines to the console and structured records
// to zerolog. Console writes are serialised so concurrent workers do not
// interleave lines.
type Logger struct {
	zlog        zerolog.Logger
	console     io.Writer
	formatter   status.FileFormatter
	reportFiles bool
	mu          sync.Mutex
}

// Option configures a Logger
type Option func(*Logger)

// WithFileReports prints one console line per target
func WithFileReports(enabled bool) Option {
	return func(l *Logger) {
		l.reportFiles = enabled
	}
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger, opts ...Option) *Logger {
	l := &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
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

// 📝 LogFileOperation records a target outcome
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.reportFiles {
		if op.Err != nil {
			fmt.Fprintln(l.console, l.formatter.FormatError(op.Path, op.Err))
		} else {
			fmt.Fprintln(l.console, l.formatter.FormatFile(op.Path, op.Status))
		}
	}

	var event *zerolog.Event
	switch op.Status {
	case status.StatusModified:
		event = l.zlog.Info()
	case status.StatusMissing:
		event = l.zlog.Warn()
	case status.StatusFailed:
		event = l.zlog.Error().Err(op.Err)
	default:
		event = l.zlog.Debug()
	}

	event.
		Str("file", op.Path).
		Str("status", op.Status.String()).
		Int("replacements", op.Replacements).
		Bool("dry_run", op.DryRun).
		Msg("file processed")
}

// 📝 Confirm prints msg verbatim. It is the only line a plain run prints.
func (l *Logger) Confirm(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Print writes pre-rendered text such as tables
func (l *Logger) Print(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, text)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
