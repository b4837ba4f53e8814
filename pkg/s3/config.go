package s3

// Config points at the bucket holding remote template catalogs.
type Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`          // S3-compatible services such as MinIO
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE"` // required by most S3-compatible services
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}
