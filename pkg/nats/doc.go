// Package nats connects to the NATS server used both as a stream transport
// for outbound envelopes and as a source of inbound events.
//
//	conn, err := nats.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer conn.Drain()
//
// Config is populated from NATS_* environment variables.
package nats
