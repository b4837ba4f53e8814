package stream

import (
	"encoding/json"
	"errors"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

// Field names written alongside each envelope on the wire.
const (
	FieldTimestamp = "timestamp"
	FieldPayload   = "payload"

	HeaderStreamID  = "Stream-Id"
	HeaderTimestamp = "Timestamp"
)

func encode(env dispatch.Envelope) ([]byte, error) {
	if env.StreamID == "" {
		return nil, ErrEmptyStreamID
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, errors.Join(ErrEncodingFailed, err)
	}
	return b, nil
}

// Decode parses a payload written by one of the publishers in this package.
func Decode(payload []byte) (dispatch.Envelope, error) {
	var env dispatch.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return dispatch.Envelope{}, err
	}
	return env, nil
}
