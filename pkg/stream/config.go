package stream

// Transport names accepted by Config.Transport.
const (
	TransportRedis  = "redis"
	TransportNATS   = "nats"
	TransportMemory = "memory"
)

type Config struct {
	Transport      string `env:"STREAM_TRANSPORT" envDefault:"memory"`
	RedisKeyPrefix string `env:"STREAM_REDIS_KEY_PREFIX"`
	RedisMaxLen    int64  `env:"STREAM_REDIS_MAXLEN" envDefault:"100000"`
	NATSSubject    string `env:"STREAM_NATS_SUBJECT_PREFIX" envDefault:"notify.stream"`
}
