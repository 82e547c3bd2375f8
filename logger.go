// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Component names attached to every record as the "component" attribute.
const (
	logStack      = "stack"
	logRouter     = "router"
	logCompositor = "compositor"
	logResize     = "resize"
	logResource   = "resource"
)

// discard drops every record. Enabled reports false, so disabled records
// are never formatted.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var (
	silent  = slog.New(discard{})
	current atomic.Pointer[slog.Logger]
)

func init() {
	current.Store(silent)
}

// SetLogger routes the engine's diagnostics to l. The engine is silent
// until SetLogger is called; passing nil silences it again.
//
// Levels:
//   - [slog.LevelDebug]: layers added or removed, images placed, strokes
//     started or ended, surfaces resized
//   - [slog.LevelInfo]: an export was composited
//   - [slog.LevelWarn]: an image was skipped during export, a resource was
//     rejected
//
// Every record carries a "component" attribute naming its emitter.
// SetLogger may be called concurrently with logging.
//
//	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger, or a silent one.
func Logger() *slog.Logger {
	return current.Load()
}

// logFor returns the current logger tagged with component. It returns the
// silent logger untouched so disabled logging does not allocate.
func logFor(component string) *slog.Logger {
	l := current.Load()
	if l == silent {
		return l
	}
	return l.With(slog.String("component", component))
}
