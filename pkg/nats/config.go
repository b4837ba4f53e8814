package nats

import "time"

type Config struct {
	URL            string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	ClientName     string        `env:"NATS_CLIENT_NAME" envDefault:"notify-dispatcher"`
	RetryAttempts  int           `env:"NATS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"NATS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"NATS_CONNECT_TIMEOUT" envDefault:"5s"`
	MaxReconnects  int           `env:"NATS_MAX_RECONNECTS" envDefault:"60"`
	ReconnectWait  time.Duration `env:"NATS_RECONNECT_WAIT" envDefault:"2s"`
}
