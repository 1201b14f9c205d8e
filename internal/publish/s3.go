package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const markdownContentType = "text/markdown; charset=utf-8"

// S3Uploader is the part of s3manager.Uploader the output writer relies on.
type S3Uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// NewS3Uploader creates an uploader from the default AWS credential chain.
// An empty region leaves the choice to the SDK (AWS_REGION, shared config).
func NewS3Uploader(region string) (S3Uploader, error) {
	cfg := &aws.Config{}
	if region != "" {
		cfg.Region = aws.String(region)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return s3manager.NewUploader(sess), nil
}

func uploadReport(ctx context.Context, uploader S3Uploader, bucket, key, markdown string) (string, error) {
	result, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(markdown),
		ContentType: aws.String(markdownContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to s3://%s/%s: %w", bucket, key, err)
	}
	if result == nil {
		return "", nil
	}
	return result.Location, nil
}
