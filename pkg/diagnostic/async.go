package diagnostic

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/notifydispatch/pkg/logger"
)

// AsyncOptions tunes the buffering of an AsyncSink.
type AsyncOptions struct {
	BufferSize   int           // Records queued in memory before new ones are dropped
	WriteTimeout time.Duration // Per-record timeout for the wrapped sink
}

// AsyncSink queues records in memory and writes them to the wrapped sink from
// a single background goroutine. Write never blocks: when the buffer is full
// the record is dropped and ErrBufferFull is returned.
type AsyncSink struct {
	next    Sink
	records chan Record
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	opts    AsyncOptions
	logger  *slog.Logger
}

// NewAsyncSink starts the background writer. Call Close on shutdown to flush
// queued records.
func NewAsyncSink(next Sink, opts AsyncOptions, l *slog.Logger) *AsyncSink {
	if next == nil {
		panic("diagnostic: async sink requires a sink")
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 1000
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if l == nil {
		l = slog.Default()
	}

	s := &AsyncSink{
		next:    next,
		records: make(chan Record, opts.BufferSize),
		done:    make(chan struct{}),
		opts:    opts,
		logger:  l,
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

// Write enqueues rec.
func (s *AsyncSink) Write(_ context.Context, rec Record) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrSinkClosed
	}

	select {
	case s.records <- rec:
		return nil
	default:
		return ErrBufferFull
	}
}

func (s *AsyncSink) worker() {
	defer s.wg.Done()
	for rec := range s.records {
		s.write(rec)
	}
}

// write isolates the wrapped sink from request contexts; the caller has
// long moved on by the time a queued record is written.
func (s *AsyncSink) write(rec Record) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.WriteTimeout)
	defer cancel()

	if err := s.next.Write(ctx, rec); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to write diagnostic record",
			logger.Component(rec.Component),
			slog.String("diagnostic_id", rec.ID),
			logger.Error(err),
		)
	}
}

// Close stops accepting records and waits for the queue to drain or ctx to expire.
func (s *AsyncSink) Close(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.records)
		s.mu.Unlock()

		go func() {
			s.wg.Wait()
			close(s.done)
		}()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
