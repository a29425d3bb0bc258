// Package diagnostics provides the core's textual diagnostic log protocol
// (spec §6) plus the OpenTelemetry tracing and metrics instrumentation
// wrapped around the search loop; the compatibility builder is not
// instrumented. The sink
// interface is deliberately narrow so the core stays logger-agnostic: the
// CLI wires a *slog.Logger-backed implementation, tests use a recording
// fake, grounded on the teacher's practice (cmd/bd/daemon_event_loop.go) of
// passing a *slog.Logger down through a bounded event loop.
package diagnostics

import (
	"fmt"
	"log/slog"
)

// Sink is the single textual progress/diagnostic sink the core writes to.
// It is not part of the data contract (spec §6): nothing reads it back.
type Sink interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// SlogSink adapts a *slog.Logger to the Sink interface.
type SlogSink struct {
	Logger *slog.Logger
}

// NewSlogSink wraps logger, or slog.Default() if logger is nil.
func NewSlogSink(logger *slog.Logger) SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogSink{Logger: logger}
}

// Infof implements Sink.
func (s SlogSink) Infof(format string, args ...any) {
	s.Logger.Info(fmt.Sprintf(format, args...))
}

// Warnf implements Sink.
func (s SlogSink) Warnf(format string, args ...any) {
	s.Logger.Warn(fmt.Sprintf(format, args...))
}

// Recording is an in-memory Sink used by tests that need to assert on
// logged diagnostics (e.g. that SearchExhausted was logged exactly once).
type Recording struct {
	Info []string
	Warn []string
}

// NewRecording returns an empty Recording sink.
func NewRecording() *Recording {
	return &Recording{}
}

// Infof implements Sink.
func (r *Recording) Infof(format string, args ...any) {
	r.Info = append(r.Info, fmt.Sprintf(format, args...))
}

// Warnf implements Sink.
func (r *Recording) Warnf(format string, args ...any) {
	r.Warn = append(r.Warn, fmt.Sprintf(format, args...))
}
