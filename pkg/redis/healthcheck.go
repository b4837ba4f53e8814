package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness probe for client. Besides answering PING the
// server must accept stream commands, which rules out read-only replicas.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		role, err := client.Do(ctx, "ROLE").Slice()
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if len(role) > 0 && role[0] != "master" {
			return fmt.Errorf("%w: server role is %v", ErrHealthcheckFailed, role[0])
		}
		return nil
	}
}
