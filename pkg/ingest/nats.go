package ingest

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dmitrymomot/notifydispatch/pkg/logger"
	"github.com/dmitrymomot/notifydispatch/pkg/requestid"
)

type queueSubscriber interface {
	QueueSubscribe(subj, queue string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// Subscriber feeds events received on a NATS subject to an EventHandler.
// Members of the same queue group share the subject's load.
type Subscriber struct {
	conn    queueSubscriber
	handler EventHandler
	logger  *slog.Logger
	timeout time.Duration
	baseCtx context.Context
}

// SubscriberOption configures a Subscriber.
type SubscriberOption func(*Subscriber)

func WithSubscriberLogger(l *slog.Logger) SubscriberOption {
	return func(s *Subscriber) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMessageTimeout bounds the time spent handling one message.
func WithMessageTimeout(d time.Duration) SubscriberOption {
	return func(s *Subscriber) { s.timeout = d }
}

// WithBaseContext sets the parent context of every handled message.
func WithBaseContext(ctx context.Context) SubscriberOption {
	return func(s *Subscriber) { s.baseCtx = ctx }
}

func NewSubscriber(conn *nats.Conn, h EventHandler, opts ...SubscriberOption) *Subscriber {
	return newSubscriber(conn, h, opts...)
}

func newSubscriber(conn queueSubscriber, h EventHandler, opts ...SubscriberOption) *Subscriber {
	s := &Subscriber{
		conn:    conn,
		handler: h,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		baseCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe starts consuming subject in queue group queue. Unsubscribe or
// drain the returned subscription to stop.
func (s *Subscriber) Subscribe(subject, queue string) (*nats.Subscription, error) {
	if subject == "" {
		return nil, ErrEmptySubject
	}
	return s.conn.QueueSubscribe(subject, queue, s.handleMsg)
}

// handleMsg never returns an error to NATS. Failures are logged, and
// request-style messages get "ERR <message>" as the reply.
func (s *Subscriber) handleMsg(msg *nats.Msg) {
	ctx := requestid.WithContext(s.baseCtx, requestid.Resolve(msg.Header.Get(requestid.Header)))
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ev, err := decodeEvent(msg.Data)
	if err == nil {
		err = s.handler.Handle(ctx, ev)
	}

	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "Event handling failed",
			slog.String("subject", msg.Subject),
			logger.Event(ev.Name),
			logger.Error(err))
		s.reply(msg, "ERR "+err.Error())
		return
	}
	s.reply(msg, "OK")
}

func (s *Subscriber) reply(msg *nats.Msg, body string) {
	if msg.Reply == "" {
		return
	}
	if err := msg.Respond([]byte(body)); err != nil {
		s.logger.LogAttrs(s.baseCtx, slog.LevelWarn, "Failed to reply to event message",
			slog.String("subject", msg.Subject),
			logger.Error(err))
	}
}
