package diagnostic_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifydispatch/pkg/diagnostic"
)

type collectingSink struct {
	mu      sync.Mutex
	records []diagnostic.Record
	release chan struct{}
}

func (s *collectingSink) Write(_ context.Context, rec diagnostic.Record) error {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *collectingSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func TestAsyncSink_FlushesOnClose(t *testing.T) {
	t.Parallel()

	next := &collectingSink{}
	sink := diagnostic.NewAsyncSink(next, diagnostic.AsyncOptions{BufferSize: 10}, nil)

	for range 5 {
		require.NoError(t, sink.Write(context.Background(), sampleRecord()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sink.Close(ctx))
	assert.Equal(t, 5, next.len())

	assert.ErrorIs(t, sink.Write(context.Background(), sampleRecord()), diagnostic.ErrSinkClosed)
	assert.NoError(t, sink.Close(ctx))
}

func TestAsyncSink_DropsWhenFull(t *testing.T) {
	t.Parallel()

	next := &collectingSink{release: make(chan struct{})}
	sink := diagnostic.NewAsyncSink(next, diagnostic.AsyncOptions{BufferSize: 1}, nil)

	var dropped int
	for range 10 {
		if err := sink.Write(context.Background(), sampleRecord()); err != nil {
			assert.ErrorIs(t, err, diagnostic.ErrBufferFull)
			dropped++
		}
	}
	assert.Positive(t, dropped)

	close(next.release)
	require.NoError(t, sink.Close(context.Background()))
	assert.Equal(t, 10-dropped, next.len())
}

func TestAsyncSink_CloseHonorsContext(t *testing.T) {
	t.Parallel()

	next := &collectingSink{release: make(chan struct{})}
	sink := diagnostic.NewAsyncSink(next, diagnostic.AsyncOptions{BufferSize: 4}, nil)
	require.NoError(t, sink.Write(context.Background(), sampleRecord()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, sink.Close(ctx), context.DeadlineExceeded)

	close(next.release)
	require.NoError(t, sink.Close(context.Background()))
}
