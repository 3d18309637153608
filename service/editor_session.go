package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"meme-generator/models"
)

var (
	// ErrCatalogAlreadyLoaded is returned when Load is called more than once
	ErrCatalogAlreadyLoaded = errors.New("template catalog already loaded")
	// ErrRetryNotAllowed is returned when Retry is called while the catalog has not failed
	ErrRetryNotAllowed = errors.New("catalog retry is only allowed after a failed load")
)

// SessionOptions configures an EditorSession
type SessionOptions struct {
	PageSize              int
	PageIncrement         int
	ClearCaptionsOnSelect bool
}

// EditorSession owns the state of one editing session: the template catalog,
// the selected template and the caption list. Events are applied one at a time.
type EditorSession struct {
	mu         sync.Mutex
	client     CatalogClientInterface
	browser    *TemplateBrowser
	captions   *CaptionList
	selectedID string
	opts       SessionOptions
}

// NewEditorSession creates a new session backed by the given catalog client
func NewEditorSession(client CatalogClientInterface, opts SessionOptions) *EditorSession {
	return &EditorSession{
		client:   client,
		browser:  NewTemplateBrowser(opts.PageSize, opts.PageIncrement),
		captions: NewCaptionList(),
		opts:     opts,
	}
}

// Load fetches the catalog. It may only run once per session; use Retry after a failure.
func (s *EditorSession) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.browser.Status() != models.CatalogIdle {
		s.mu.Unlock()
		return ErrCatalogAlreadyLoaded
	}
	s.browser.MarkLoading()
	s.mu.Unlock()

	return s.fetch(ctx)
}

// Retry refetches the catalog after a failed load
func (s *EditorSession) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.browser.Status() != models.CatalogFailed {
		s.mu.Unlock()
		return ErrRetryNotAllowed
	}
	s.browser.MarkLoading()
	s.mu.Unlock()

	log.Printf("🔄 Retrying template catalog fetch")
	return s.fetch(ctx)
}

// fetch runs the catalog request without holding the lock, then applies the result
func (s *EditorSession) fetch(ctx context.Context) error {
	templates, err := s.client.Fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("❌ Template catalog unavailable: %v", err)
		s.browser.SetFailed(err)
		return err
	}
	s.browser.SetTemplates(templates)
	return nil
}

// LoadMore reveals the next page of templates and returns the updated catalog view
func (s *EditorSession) LoadMore() models.CatalogView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if added := s.browser.LoadMore(); added > 0 {
		log.Printf("📄 Load more: %d templates now visible", s.browser.visible)
	}
	return s.browser.View()
}

// ShowAll reveals every remaining template and returns the updated catalog view
func (s *EditorSession) ShowAll() models.CatalogView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browser.ShowAll()
	return s.browser.View()
}

// Search fuzzy-matches template names across the whole catalog
func (s *EditorSession) Search(query string) []models.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browser.Search(query)
}

// Select makes the template with the given id the active one.
// With ClearCaptionsOnSelect, switching to a different template drops the existing captions.
func (s *EditorSession) Select(id string) (models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.browser.Lookup(id)
	if err != nil {
		return models.Template{}, err
	}
	if s.opts.ClearCaptionsOnSelect && s.selectedID != "" && s.selectedID != id {
		s.captions.Reset()
	}
	s.selectedID = id
	log.Printf("🖼️  Template selected: %s (%s)", t.Name, t.ID)
	return t, nil
}

// Selected returns the active template, or nil when none is selected
func (s *EditorSession) Selected() *models.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *EditorSession) selectedLocked() *models.Template {
	if s.selectedID == "" {
		return nil
	}
	t, err := s.browser.Lookup(s.selectedID)
	if err != nil {
		return nil
	}
	return &t
}

// AddCaption appends a new caption to the active template
func (s *EditorSession) AddCaption() (models.Caption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedLocked() == nil {
		return models.Caption{}, ErrNoActiveSurface
	}
	return s.captions.Add(), nil
}

// SetCaptionText replaces the text of the caption with the given id
func (s *EditorSession) SetCaptionText(id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.SetText(id, text)
}

// SetCaptionPosition commits the final position of a drag gesture
func (s *EditorSession) SetCaptionPosition(id string, pos models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.SetPosition(id, pos)
}

// SetCaptionTextAt replaces the text of the caption at index
func (s *EditorSession) SetCaptionTextAt(index int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.SetTextAt(index, text)
}

// SetCaptionPositionAt replaces the position of the caption at index
func (s *EditorSession) SetCaptionPositionAt(index int, pos models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.SetPositionAt(index, pos)
}

// Snapshot returns a copy of the whole session state
func (s *EditorSession) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionSnapshot{
		Catalog:  s.browser.View(),
		Selected: s.selectedLocked(),
		Captions: s.captions.Snapshot(),
	}
}

// Template looks up a template anywhere in the catalog by id
func (s *EditorSession) Template(id string) (models.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browser.Lookup(id)
}
