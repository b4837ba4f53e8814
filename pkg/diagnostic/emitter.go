package diagnostic

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifydispatch/pkg/logger"
)

// Emitter sends records to a Sink on a best-effort basis.
// Sink failures are logged and never returned to the caller.
type Emitter struct {
	sink    Sink
	enabled bool
	logger  *slog.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithEnabled toggles emission. Emitters are enabled by default.
func WithEnabled(enabled bool) Option {
	return func(e *Emitter) {
		e.enabled = enabled
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Emitter) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEmitter creates an Emitter writing to sink. A nil sink disables emission.
func NewEmitter(sink Sink, opts ...Option) *Emitter {
	e := &Emitter{
		sink:    sink,
		enabled: true,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enabled reports whether records are emitted at all. Callers check it before
// building a record.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled && e.sink != nil
}

// Emit stamps rec with an id and creation time and writes it to the sink.
func (e *Emitter) Emit(ctx context.Context, rec Record) {
	if !e.Enabled() {
		return
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	err := rec.Validate()
	if err == nil {
		err = e.sink.Write(ctx, rec)
	}
	if err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to emit diagnostic record",
			logger.Component(rec.Component),
			slog.String("action", rec.Action),
			logger.Error(err),
		)
	}
}
