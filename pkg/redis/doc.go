// Package redis connects to the Redis server backing the notification
// stream and exposes a readiness probe for it.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	publisher := stream.NewRedisPublisher(client)
//
// Config is populated from REDIS_* environment variables.
package redis
