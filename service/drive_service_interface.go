package service

import "context"

// ExportPublisherInterface defines the contract for publishing exported memes to remote storage
type ExportPublisherInterface interface {
	UploadExport(ctx context.Context, filename string, data []byte) (string, error)
}
