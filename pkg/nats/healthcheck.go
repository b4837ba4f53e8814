package nats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Healthcheck returns a readiness probe that round-trips a PING to the server.
func Healthcheck(conn *nats.Conn) func(context.Context) error {
	return func(ctx context.Context) error {
		if status := conn.Status(); status != nats.CONNECTED {
			return fmt.Errorf("%w: connection status %s", ErrHealthcheckFailed, status)
		}
		if err := conn.FlushWithContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
