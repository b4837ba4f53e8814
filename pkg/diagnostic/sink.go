package diagnostic

import (
	"context"
	"errors"
	"log/slog"
)

// Sink persists or forwards diagnostic records.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(ctx context.Context, rec Record) error

// Write calls f.
func (f SinkFunc) Write(ctx context.Context, rec Record) error {
	return f(ctx, rec)
}

// LogSink writes records to a structured logger.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogSink creates a LogSink logging at level. A nil logger means slog.Default().
func NewLogSink(l *slog.Logger, level slog.Level) *LogSink {
	if l == nil {
		l = slog.Default()
	}
	return &LogSink{logger: l, level: level}
}

func (s *LogSink) Write(ctx context.Context, rec Record) error {
	inputs := make([]slog.Attr, 0, len(rec.Inputs))
	for k, v := range rec.Inputs {
		inputs = append(inputs, slog.String(k, v))
	}

	s.logger.LogAttrs(ctx, s.level, "Diagnostic record",
		slog.String("diagnostic_id", rec.ID),
		slog.String("component", rec.Component),
		slog.String("action", rec.Action),
		slog.Attr{Key: "inputs", Value: slog.GroupValue(inputs...)},
		slog.String("result_status", string(rec.ResultStatus)),
		slog.String("result_message", rec.ResultMessage),
		slog.String("detail_level", string(rec.DetailLevel)),
	)
	return nil
}

// MultiSink fans a record out to several sinks and joins their errors.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, rec Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
