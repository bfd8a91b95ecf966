package snapshot

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// GCSProvider writes snapshots to a Google Cloud Storage bucket.
// Authentication uses Application Default Credentials.
type GCSProvider struct {
	client     *storage.Client
	bucketName string
	logger     *zap.Logger
}

// NewGCSProvider initializes the client and verifies the bucket is
// reachable, failing fast on misconfiguration.
func NewGCSProvider(ctx context.Context, bucketName string, logger *zap.Logger) (*GCSProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	if _, err := client.Bucket(bucketName).Attrs(ctx); err != nil {
		if cerr := client.Close(); cerr != nil {
			logger.Warn("close gcs client after bucket check failure", zap.Error(cerr))
		}
		return nil, fmt.Errorf("get gcs bucket %q attributes: %w", bucketName, err)
	}
	return &GCSProvider{client: client, bucketName: bucketName, logger: logger}, nil
}

// Save uploads the object and returns its gs:// URI.
func (p *GCSProvider) Save(ctx context.Context, objectName string, data []byte) (string, error) {
	wc := p.client.Bucket(p.bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = "text/markdown; charset=utf-8"
	if _, err := wc.Write(data); err != nil {
		if cerr := wc.Close(); cerr != nil {
			p.logger.Warn("close gcs writer after write failure", zap.Error(cerr))
		}
		return "", fmt.Errorf("write gcs object %s: %w", objectName, err)
	}
	// Close finalizes the upload.
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("close gcs writer for %s: %w", objectName, err)
	}
	return fmt.Sprintf("gs://%s/%s", p.bucketName, objectName), nil
}

// Close releases the underlying client.
func (p *GCSProvider) Close() error {
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("close gcs client: %w", err)
	}
	return nil
}
