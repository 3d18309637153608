package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"time"

	"meme-generator/models"
	"meme-generator/repository"
)

// SessionReader gives read access to the current editing session state
type SessionReader interface {
	Snapshot() models.SessionSnapshot
}

// ExportService rasterizes the current composition into meme.png
type ExportService struct {
	session    SessionReader
	canvas     *Canvas
	rasterizer Rasterizer
	timeout    time.Duration
	history    repository.ExportRepositoryInterface
	publisher  ExportPublisherInterface
	now        func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(session SessionReader, canvas *Canvas, rasterizer Rasterizer, timeout time.Duration) *ExportService {
	return &ExportService{
		session:    session,
		canvas:     canvas,
		rasterizer: rasterizer,
		timeout:    timeout,
		now:        time.Now,
	}
}

// SetHistory enables recording of successful exports
func (s *ExportService) SetHistory(history repository.ExportRepositoryInterface) {
	s.history = history
}

// SetPublisher enables publishing of successful exports
func (s *ExportService) SetPublisher(publisher ExportPublisherInterface) {
	s.publisher = publisher
}

// Download rasterizes the composition as it is right now.
// With no template selected it returns (nil, nil): there is nothing to save and nothing went wrong.
// Rasterization failures are returned wrapped in ErrRasterizationFailed or ErrTemplateImageUnavailable;
// a blank or undecodable image is never returned as a result.
func (s *ExportService) Download(ctx context.Context) (*models.ExportResult, error) {
	comp, err := s.canvas.Compose(s.session.Snapshot())
	if errors.Is(err, ErrNoActiveSurface) {
		log.Printf("⏭️  Download skipped: no template selected")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	log.Printf("📥 Exporting %s with %d captions using %s rasterizer", comp.Template.ID, len(comp.Captions), s.rasterizer.Name())

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	data, err := s.rasterizer.Rasterize(ctx, comp)
	if err != nil {
		if !errors.Is(err, ErrRasterizationFailed) && !errors.Is(err, ErrTemplateImageUnavailable) {
			err = fmt.Errorf("%w: %v", ErrRasterizationFailed, err)
		}
		log.Printf("❌ Export failed: %v", err)
		return nil, err
	}
	if err := validateExport(data, comp); err != nil {
		log.Printf("❌ Export failed: %v", err)
		return nil, err
	}

	result := &models.ExportResult{
		Filename:     models.ExportFilename,
		PNG:          data,
		TemplateID:   comp.Template.ID,
		CaptionCount: len(comp.Captions),
		Rasterizer:   s.rasterizer.Name(),
	}

	s.publish(ctx, comp, result)
	s.record(ctx, comp, result)

	log.Printf("✓ Export ready: %s (%d bytes)", result.Filename, len(result.PNG))
	return result, nil
}

// publish uploads the export when a publisher is configured. Failures are logged only.
func (s *ExportService) publish(ctx context.Context, comp models.Composition, result *models.ExportResult) {
	if s.publisher == nil {
		return
	}
	name := fmt.Sprintf("meme-%s-%s.png", comp.Template.ID, s.now().UTC().Format("20060102-150405"))
	fileID, err := s.publisher.UploadExport(ctx, name, result.PNG)
	if err != nil {
		log.Printf("⚠️  Warning: failed to publish export: %v", err)
		return
	}
	result.DriveFileID = fileID
}

// record writes the export history row when history is configured. Failures are logged only.
func (s *ExportService) record(ctx context.Context, comp models.Composition, result *models.ExportResult) {
	if s.history == nil {
		return
	}
	rec := &models.ExportRecord{
		TemplateID:   comp.Template.ID,
		TemplateName: comp.Template.Name,
		CaptionCount: result.CaptionCount,
		Filename:     result.Filename,
		ByteSize:     len(result.PNG),
		Rasterizer:   result.Rasterizer,
		DriveFileID:  result.DriveFileID,
	}
	if err := s.history.Insert(ctx, rec); err != nil {
		log.Printf("⚠️  Warning: failed to record export: %v", err)
	}
}

// History returns recent exports, or an empty list when history is disabled
func (s *ExportService) History(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if s.history == nil {
		return []models.ExportRecord{}, nil
	}
	return s.history.ListRecent(ctx, limit)
}

// validateExport rejects empty, undecodable, wrongly sized or fully transparent PNG output
func validateExport(data []byte, comp models.Composition) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: rasterizer produced no data", ErrRasterizationFailed)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: output is not a valid PNG: %v", ErrRasterizationFailed, err)
	}
	if img.Bounds().Empty() {
		return fmt.Errorf("%w: output image is empty", ErrRasterizationFailed)
	}
	if b := img.Bounds(); b.Dx() != comp.Width || b.Dy() != comp.Height {
		return fmt.Errorf("%w: output is %dx%d, surface is %dx%d", ErrRasterizationFailed, b.Dx(), b.Dy(), comp.Width, comp.Height)
	}
	if isTransparent(img) {
		return fmt.Errorf("%w: output image is blank", ErrRasterizationFailed)
	}
	return nil
}

func isTransparent(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				return false
			}
		}
	}
	return true
}
