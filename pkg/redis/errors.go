package redis

import "errors"

var (
	ErrEmptyConnectionURL   = errors.New("empty redis connection URL")
	ErrInvalidConnectionURL = errors.New("invalid redis connection URL")
	ErrRedisNotReady        = errors.New("redis did not answer within the retry budget")
	ErrHealthcheckFailed    = errors.New("redis healthcheck failed")
)
