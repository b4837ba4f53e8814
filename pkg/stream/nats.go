package stream

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// NATSPublisher publishes envelopes on "<prefix>.<stream token>", where the
// token is the stream id with subject separators and wildcards replaced by
// '_'. The original stream id travels in the Stream-Id header.
type NATSPublisher struct {
	conn   msgPublisher
	prefix string
}

func NewNATSPublisher(conn *nats.Conn, subjectPrefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: subjectPrefix}
}

// Subject returns the subject an envelope for streamID is published on.
// The stream id always maps to exactly one subject token, so consumers can
// subscribe to "<prefix>.*".
func (p *NATSPublisher) Subject(streamID string) string {
	token := subjectTokenReplacer.Replace(streamID)
	if p.prefix == "" {
		return token
	}
	return p.prefix + "." + token
}

var subjectTokenReplacer = strings.NewReplacer(
	".", "_",
	"*", "_",
	">", "_",
	" ", "_",
	"\t", "_",
	"\r", "_",
	"\n", "_",
)

func (p *NATSPublisher) Publish(ctx context.Context, env dispatch.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := encode(env)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(p.Subject(env.StreamID))
	msg.Header.Set(HeaderStreamID, env.StreamID)
	msg.Header.Set(HeaderTimestamp, strconv.FormatInt(env.Timestamp, 10))
	msg.Data = payload

	if err := p.conn.PublishMsg(msg); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}
