package stream

import "errors"

var (
	ErrEmptyStreamID    = errors.New("envelope has no stream id")
	ErrEncodingFailed   = errors.New("failed to encode envelope")
	ErrPublishFailed    = errors.New("failed to publish envelope")
	ErrUnknownTransport = errors.New("unknown stream transport")
)
