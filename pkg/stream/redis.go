package stream

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

// xadder is the subset of redis.Cmdable used by RedisPublisher.
type xadder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisPublisher appends envelopes to a Redis stream named after the
// envelope's stream id.
type RedisPublisher struct {
	client    xadder
	keyPrefix string
	maxLen    int64
}

// RedisOption configures a RedisPublisher.
type RedisOption func(*RedisPublisher)

// WithKeyPrefix prepends prefix to every stream key.
func WithKeyPrefix(prefix string) RedisOption {
	return func(p *RedisPublisher) { p.keyPrefix = prefix }
}

// WithMaxLen caps each stream at roughly n entries. Zero disables trimming.
func WithMaxLen(n int64) RedisOption {
	return func(p *RedisPublisher) { p.maxLen = max(n, 0) }
}

func NewRedisPublisher(client redis.Cmdable, opts ...RedisOption) *RedisPublisher {
	return newRedisPublisher(client, opts...)
}

func newRedisPublisher(client xadder, opts ...RedisOption) *RedisPublisher {
	p := &RedisPublisher{client: client}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish appends env to its stream. The entry id assigned by Redis is discarded.
func (p *RedisPublisher) Publish(ctx context.Context, env dispatch.Envelope) error {
	payload, err := encode(env)
	if err != nil {
		return err
	}

	args := &redis.XAddArgs{
		Stream: p.keyPrefix + env.StreamID,
		Values: map[string]any{
			FieldTimestamp: strconv.FormatInt(env.Timestamp, 10),
			FieldPayload:   string(payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}
