package diagnostic

import "errors"

var (
	// ErrInvalidRecord indicates a record is missing required fields.
	ErrInvalidRecord = errors.New("invalid diagnostic record")

	// ErrBufferFull indicates the async sink dropped a record.
	ErrBufferFull = errors.New("diagnostic buffer is full")

	// ErrSinkClosed indicates a write to a closed sink.
	ErrSinkClosed = errors.New("diagnostic sink is closed")

	// ErrIndexFailed indicates OpenSearch rejected a record.
	ErrIndexFailed = errors.New("failed to index diagnostic record")
)
