package orgdir

import "time"

// Backend names accepted by Config.Backend.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendStatic   = "static"
)

// Config selects and tunes the organization directory.
type Config struct {
	Backend   string            `env:"ORG_DIRECTORY" envDefault:"static"`
	Static    map[string]string `env:"ORG_STATIC_DOMAINS" envKeyValSeparator:"="`
	CacheTTL  time.Duration     `env:"ORG_CACHE_TTL" envDefault:"5m"`
	CacheSize int               `env:"ORG_CACHE_SIZE" envDefault:"1000"`
}
