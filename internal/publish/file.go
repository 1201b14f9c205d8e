package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/sarif2md/pkg/shared/files"
)

// DefaultReportName is used when the output destination is a directory.
const DefaultReportName = "sarif-report.md"

const s3Scheme = "s3://"

// OutputWriter stores the report at a local path or an s3:// object.
type OutputWriter struct {
	Destination string
	Logger      hclog.Logger
	// S3 is used for s3:// destinations. A session-backed uploader is created on demand when nil.
	S3     S3Uploader
	Region string
}

// Write stores markdown and returns the final path or URI.
func (w *OutputWriter) Write(ctx context.Context, markdown string) (string, error) {
	dest := strings.TrimSpace(w.Destination)
	if dest == "" {
		return "", fmt.Errorf("output destination is empty")
	}

	if strings.HasPrefix(dest, s3Scheme) {
		return w.writeS3(ctx, dest, markdown)
	}
	return w.writeLocal(dest, markdown)
}

// Publish implements Publisher.
func (w *OutputWriter) Publish(ctx context.Context, markdown string) error {
	_, err := w.Write(ctx, markdown)
	return err
}

func (w *OutputWriter) writeLocal(dest, markdown string) (string, error) {
	fullPath, folder, err := files.DetermineFileFullPath(dest, DefaultReportName)
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}
	if err := files.WriteFile(fullPath, []byte(markdown)); err != nil {
		return "", fmt.Errorf("failed to write report to %q: %w", fullPath, err)
	}

	w.logger().Debug("report written", "path", fullPath)
	return fullPath, nil
}

func (w *OutputWriter) writeS3(ctx context.Context, dest, markdown string) (string, error) {
	bucket, key, err := parseS3Destination(dest)
	if err != nil {
		return "", err
	}

	uploader := w.S3
	if uploader == nil {
		uploader, err = NewS3Uploader(w.Region)
		if err != nil {
			return "", err
		}
	}

	location, err := uploadReport(ctx, uploader, bucket, key, markdown)
	if err != nil {
		return "", err
	}
	w.logger().Debug("report uploaded", "bucket", bucket, "key", key, "location", location)
	return s3Scheme + bucket + "/" + key, nil
}

func (w *OutputWriter) logger() hclog.Logger {
	if w.Logger == nil {
		return hclog.NewNullLogger()
	}
	return w.Logger
}

// parseS3Destination splits s3://bucket/key. A key ending in "/" or a bare bucket receives DefaultReportName.
func parseS3Destination(dest string) (string, string, error) {
	rest := strings.TrimPrefix(dest, s3Scheme)
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("invalid S3 destination %q: bucket is empty", dest)
	}
	if key == "" || strings.HasSuffix(key, "/") {
		key += DefaultReportName
	}
	return bucket, key, nil
}
