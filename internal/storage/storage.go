package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
// Food pictures are uploaded by clients directly to the store through
// presigned PUT URLs and served back through presigned GET URLs.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT
	// requests for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading/viewing an object.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
