package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService publishes exported memes to a Google Drive folder
// Implements ExportPublisherInterface
type DriveService struct {
	client   *drive.Service
	folderID string
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath, folderID string) (*DriveService, error) {
	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Ensure DriveService implements ExportPublisherInterface
var _ ExportPublisherInterface = (*DriveService)(nil)

// UploadExport uploads a PNG into the configured folder and returns the new file id
func (ds *DriveService) UploadExport(ctx context.Context, filename string, data []byte) (string, error) {
	file := &drive.File{
		Name:     filename,
		MimeType: "image/png",
		Parents:  []string{ds.folderID},
	}

	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id, name").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to drive: %w", filename, err)
	}

	log.Printf("☁️  Uploaded %s to Drive folder %s (id=%s)", filename, ds.folderID, created.Id)
	return created.Id, nil
}
