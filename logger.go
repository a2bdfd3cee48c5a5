package reui

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a tessellator or stash on another
// goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for reui and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by reui:
//   - [slog.LevelDebug]: atlas growth and reset, glyph rasterization
//   - [slog.LevelWarn]: scratch arena exhaustion, glyphs dropped because
//     of unsupported or corrupt font data
//
// Example:
//
//	reui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by reui.
// Sub-packages (atlas, truetype, stash, tess) call this to share
// the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
