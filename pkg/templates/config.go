package templates

type Config struct {
	Path          string `env:"NOTIFY_TEMPLATES_PATH"`      // local catalog file
	S3Prefix      string `env:"NOTIFY_TEMPLATES_S3_PREFIX"` // used when S3_BUCKET is set
	DefaultLocale string `env:"NOTIFY_DEFAULT_LOCALE" envDefault:"en-US"`
	SendFrom      string `env:"NOTIFY_SEND_FROM" envDefault:"no-reply@localhost"`
}
