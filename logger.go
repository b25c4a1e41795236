package shaderspec

import (
	"context"
	"log/slog"
)

// nopHandler drops every record. Accessor queries sit on the translator's
// hot path, so the silent default must cost nothing: Enabled reports false
// and slog never formats the message.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates the silent logger used when no sink is injected.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// orNopLogger returns l, or a silent logger when l is nil. Accessors take
// their logger by injection and never touch slog's process-wide default.
func orNopLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return newNopLogger()
	}
	return l
}
