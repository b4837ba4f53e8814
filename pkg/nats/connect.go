package nats

import (
	"context"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
)

// Connect dials the NATS server, retrying up to cfg.RetryAttempts times.
// Once connected the client reconnects on its own.
func Connect(ctx context.Context, cfg Config) (*nats.Conn, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
	}
	if cfg.ConnectTimeout > 0 {
		opts = append(opts, nats.Timeout(cfg.ConnectTimeout))
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrNATSNotReady, err)
		}

		conn, err := nats.Connect(cfg.URL, opts...)
		if err == nil {
			return conn, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(cfg.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(ErrNATSNotReady, ctx.Err())
		case <-timer.C:
		}
	}

	return nil, errors.Join(ErrNATSNotReady, lastErr)
}
