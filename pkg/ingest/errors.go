package ingest

import "errors"

var (
	ErrInvalidEvent = errors.New("invalid event")
	ErrEmptySubject = errors.New("empty nats subject")
)
