package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig      = errors.New("invalid s3 configuration")
	ErrFailedToLoadConfig = errors.New("failed to load aws configuration")
	ErrObjectNotFound     = errors.New("s3 object not found")
	ErrBucketNotFound     = errors.New("s3 bucket not found")
	ErrAccessDenied       = errors.New("s3 access denied")
	ErrServiceUnavailable = errors.New("s3 service unavailable")
	ErrHealthcheckFailed  = errors.New("s3 healthcheck failed")
)

// Classify maps SDK errors onto the package sentinels. Context errors are
// returned unchanged.
func Classify(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s: %w", ErrObjectNotFound, operation, err)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return fmt.Errorf("%w: %s: %w", ErrBucketNotFound, operation, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s: %w", ErrObjectNotFound, operation, err)
		case "NoSuchBucket":
			return fmt.Errorf("%w: %s: %w", ErrBucketNotFound, operation, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %s: %w", ErrAccessDenied, operation, err)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s: %w", ErrServiceUnavailable, operation, err)
		default:
			return fmt.Errorf("%s failed (code: %s): %w", operation, apiErr.ErrorCode(), err)
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
