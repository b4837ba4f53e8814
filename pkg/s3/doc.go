// Package s3 connects to the S3 bucket (or S3-compatible store) that serves
// remote template catalogs, and classifies SDK errors into package
// sentinels.
//
//	client, err := s3.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	tpls, err := templates.LoadS3(ctx, client, cfg.Bucket, "catalogs/")
//
// Config is populated from S3_* environment variables.
package s3
