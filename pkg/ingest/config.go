package ingest

import "time"

type Config struct {
	NATSSubject   string        `env:"NATS_EVENTS_SUBJECT" envDefault:"identity.events"`
	NATSQueue     string        `env:"NATS_EVENTS_QUEUE" envDefault:"notify-dispatcher"`
	HandleTimeout time.Duration `env:"INGEST_HANDLE_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes  int64         `env:"INGEST_MAX_BODY_BYTES" envDefault:"1048576"`
}
