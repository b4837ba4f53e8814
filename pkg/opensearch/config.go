package opensearch

// Config holds the connection parameters of the OpenSearch cluster receiving
// diagnostic records.
type Config struct {
	Addresses    []string `env:"OPENSEARCH_ADDRESSES" envSeparator:","`
	Username     string   `env:"OPENSEARCH_USERNAME"`
	Password     string   `env:"OPENSEARCH_PASSWORD"`
	Index        string   `env:"OPENSEARCH_DIAGNOSTICS_INDEX" envDefault:"notification-diagnostics"`
	MaxRetries   int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry bool     `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`
}

// Enabled reports whether any cluster address is configured.
func (c Config) Enabled() bool {
	return len(c.Addresses) > 0
}
