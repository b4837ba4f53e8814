package s3

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type bucketHeader interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Healthcheck returns a readiness probe that checks bucket is reachable.
func Healthcheck(client bucketHeader, bucket string) func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
			return errors.Join(ErrHealthcheckFailed, Classify(err, "head bucket"))
		}
		return nil
	}
}
