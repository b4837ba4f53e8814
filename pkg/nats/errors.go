package nats

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("empty nats connection URL")
	ErrNATSNotReady       = errors.New("nats did not become ready within the given time period")
	ErrHealthcheckFailed  = errors.New("nats healthcheck failed")
)
