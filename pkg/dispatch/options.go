package dispatch

import (
	"log/slog"
	"time"
)

// Option configures a Handler.
type Option func(*Handler)

// WithTemplateOverride sets the template override strategy.
func WithTemplateOverride(o TemplateOverride) Option {
	return func(h *Handler) {
		h.templates = o
	}
}

// WithStreamResolver sets the stream id strategy. Without one every envelope
// goes to DefaultStreamID.
func WithStreamResolver(r StreamResolver) Option {
	return func(h *Handler) {
		h.streams = r
	}
}

// WithDiagnostics attaches a diagnostic emitter.
func WithDiagnostics(d DiagnosticEmitter) Option {
	return func(h *Handler) {
		h.diagnostics = d
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithClock overrides the envelope timestamp source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}
