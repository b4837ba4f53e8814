package diagnostic_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifydispatch/pkg/diagnostic"
)

func TestLogSink_Write(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := diagnostic.NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)), slog.LevelInfo)

	rec := sampleRecord()
	rec.ID = "rec-1"
	require.NoError(t, sink.Write(context.Background(), rec))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "rec-1", line["diagnostic_id"])
	assert.Equal(t, "handle-event", line["action"])
	assert.Equal(t, "SUCCESS", line["result_status"])
	assert.Equal(t, map[string]any{"tenantDomain": "acme.com"}, line["inputs"])
}

func TestMultiSink_Write(t *testing.T) {
	t.Parallel()

	errA := errors.New("a failed")
	calls := 0
	ok := diagnostic.SinkFunc(func(context.Context, diagnostic.Record) error {
		calls++
		return nil
	})
	failing := diagnostic.SinkFunc(func(context.Context, diagnostic.Record) error {
		calls++
		return errA
	})

	err := diagnostic.MultiSink{failing, ok}.Write(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, errA)
	assert.Equal(t, 2, calls)

	assert.NoError(t, diagnostic.MultiSink{ok}.Write(context.Background(), sampleRecord()))
}
