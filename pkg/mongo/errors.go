package mongo

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("empty mongo connection URL")
	ErrMongoNotReady      = errors.New("mongo primary did not answer within the retry budget")
	ErrHealthcheckFailed  = errors.New("mongo healthcheck failed")
)
