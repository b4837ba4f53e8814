package templates

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
	s3pkg "github.com/dmitrymomot/notifydispatch/pkg/s3"
)

// objectStore is the subset of *s3.Client used to read remote catalogs.
type objectStore interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LoadS3 reads every .yaml or .yml object under prefix in bucket and
// concatenates the catalogs in key order.
func LoadS3(ctx context.Context, client objectStore, bucket, prefix string) ([]dispatch.Template, error) {
	var (
		out   []dispatch.Template
		token *string
	)
	for {
		page, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, s3pkg.Classify(err, "list template catalogs")
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !isCatalogKey(key) {
				continue
			}
			tpls, err := readS3Catalog(ctx, client, bucket, key)
			if err != nil {
				return nil, err
			}
			out = append(out, tpls...)
		}

		if !aws.ToBool(page.IsTruncated) || page.NextContinuationToken == nil {
			return out, nil
		}
		token = page.NextContinuationToken
	}
}

func readS3Catalog(ctx context.Context, client objectStore, bucket, key string) ([]dispatch.Template, error) {
	obj, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s3pkg.Classify(err, "get template catalog "+key)
	}
	defer obj.Body.Close()

	b, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("read template catalog %s: %w", key, err)
	}

	tpls, err := ParseCatalog(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return tpls, nil
}

func isCatalogKey(key string) bool {
	ext := strings.ToLower(path.Ext(key))
	return ext == ".yaml" || ext == ".yml"
}
