package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LogFunc receives one formatted log line per record.
type LogFunc func(message string)

// ObserverHandler is an slog.Handler that forwards every record to an
// underlying handler and additionally mirrors it to a LogFunc. The
// mirrored line is "message key=value ..." without timestamp or level,
// matching what a progress viewport would display.
type ObserverHandler struct {
	// handler is the underlying slog handler that receives records
	// unchanged.
	handler slog.Handler

	// fn receives the formatted mirror of each record.
	fn LogFunc

	// attrs are attributes accumulated via WithAttrs, included in
	// every mirrored line.
	attrs []slog.Attr
}

// NewObserverHandler creates an ObserverHandler wrapping handler. If
// handler is nil, slog.Default().Handler() is used.
func NewObserverHandler(handler slog.Handler, fn LogFunc) *ObserverHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &ObserverHandler{handler: handler, fn: fn}
}

// Enabled reports whether the handler handles records at the given
// level. It delegates to the underlying handler.
func (h *ObserverHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle mirrors the record to the LogFunc and passes it through to the
// underlying handler.
func (h *ObserverHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.fn != nil {
		var b strings.Builder
		b.WriteString(r.Message)

		for _, a := range h.attrs {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
		}
		r.Attrs(func(a slog.Attr) bool {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
			return true
		})

		h.fn(b.String())
	}

	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new ObserverHandler whose mirrored lines include
// the given attributes.
func (h *ObserverHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &ObserverHandler{
		handler: h.handler.WithAttrs(attrs),
		fn:      h.fn,
		attrs:   merged,
	}
}

// WithGroup returns a new ObserverHandler with the given group opened
// on the underlying handler. Groups are not reflected in mirrored
// lines; the flat key=value form is kept for readability.
func (h *ObserverHandler) WithGroup(name string) slog.Handler {
	return &ObserverHandler{
		handler: h.handler.WithGroup(name),
		fn:      h.fn,
		attrs:   h.attrs,
	}
}
