package models

import "time"

// ExportFilename is the fixed name of the downloaded meme
const ExportFilename = "meme.png"

// ExportResult holds a rasterized composition ready to be saved
type ExportResult struct {
	Filename     string `json:"filename"`
	PNG          []byte `json:"-"`
	TemplateID   string `json:"templateId"`
	CaptionCount int    `json:"captionCount"`
	Rasterizer   string `json:"rasterizer"`
	DriveFileID  string `json:"driveFileId,omitempty"`
}

// ExportRecord represents an export history row in the database
type ExportRecord struct {
	ID           int64     `json:"id"`
	TemplateID   string    `json:"templateId"`
	TemplateName string    `json:"templateName"`
	CaptionCount int       `json:"captionCount"`
	Filename     string    `json:"filename"`
	ByteSize     int       `json:"byteSize"`
	Rasterizer   string    `json:"rasterizer"`
	DriveFileID  string    `json:"driveFileId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
