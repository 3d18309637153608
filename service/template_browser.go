package service

import (
	"errors"

	"github.com/sahilm/fuzzy"

	"meme-generator/models"
)

// ErrTemplateNotFound is returned when a template id is not in the catalog
var ErrTemplateNotFound = errors.New("template not found")

// TemplateBrowser exposes an incrementally growing prefix of the template catalog.
// It is not safe for concurrent use; EditorSession serializes access.
type TemplateBrowser struct {
	templates     []models.Template
	index         map[string]int
	visible       int
	pageSize      int
	pageIncrement int
	status        models.CatalogStatus
	lastErr       error
}

// NewTemplateBrowser creates an empty browser in the idle state
func NewTemplateBrowser(pageSize, pageIncrement int) *TemplateBrowser {
	return &TemplateBrowser{
		pageSize:      pageSize,
		pageIncrement: pageIncrement,
		status:        models.CatalogIdle,
		index:         map[string]int{},
	}
}

// MarkLoading records that a catalog fetch is in flight
func (b *TemplateBrowser) MarkLoading() {
	b.status = models.CatalogLoading
	b.lastErr = nil
}

// SetTemplates replaces the catalog with a fetched list and resets the visible prefix
func (b *TemplateBrowser) SetTemplates(templates []models.Template) {
	b.templates = templates
	b.index = make(map[string]int, len(templates))
	for i, t := range templates {
		b.index[t.ID] = i
	}
	b.visible = min(len(templates), b.pageSize)
	b.lastErr = nil
	if len(templates) == 0 {
		b.status = models.CatalogEmpty
	} else {
		b.status = models.CatalogReady
	}
}

// SetFailed records a failed fetch. The catalog stays empty.
func (b *TemplateBrowser) SetFailed(err error) {
	b.templates = nil
	b.index = map[string]int{}
	b.visible = 0
	b.status = models.CatalogFailed
	b.lastErr = err
}

// Status returns the current load status
func (b *TemplateBrowser) Status() models.CatalogStatus {
	return b.status
}

// Visible returns a copy of the visible prefix
func (b *TemplateBrowser) Visible() []models.Template {
	out := make([]models.Template, b.visible)
	copy(out, b.templates[:b.visible])
	return out
}

// Total returns the number of templates in the catalog
func (b *TemplateBrowser) Total() int {
	return len(b.templates)
}

// HasMore reports whether LoadMore would reveal additional templates
func (b *TemplateBrowser) HasMore() bool {
	return b.visible < len(b.templates)
}

// LoadMore extends the visible prefix by one increment, capped at the catalog size.
// It returns the number of newly visible templates.
func (b *TemplateBrowser) LoadMore() int {
	before := b.visible
	b.visible = min(b.visible+b.pageIncrement, len(b.templates))
	return b.visible - before
}

// ShowAll makes the whole catalog visible and returns the number of newly visible templates
func (b *TemplateBrowser) ShowAll() int {
	before := b.visible
	b.visible = len(b.templates)
	return b.visible - before
}

// Lookup finds a template by id anywhere in the catalog
func (b *TemplateBrowser) Lookup(id string) (models.Template, error) {
	i, ok := b.index[id]
	if !ok {
		return models.Template{}, ErrTemplateNotFound
	}
	return b.templates[i], nil
}

// Search returns templates whose names fuzzy-match the query, best match first.
// An empty query returns the visible prefix.
func (b *TemplateBrowser) Search(query string) []models.Template {
	if query == "" {
		return b.Visible()
	}
	matches := fuzzy.FindFrom(query, templateNames(b.templates))
	out := make([]models.Template, 0, len(matches))
	for _, m := range matches {
		out = append(out, b.templates[m.Index])
	}
	return out
}

// View returns the browser state for display
func (b *TemplateBrowser) View() models.CatalogView {
	view := models.CatalogView{
		Status:       b.status,
		Visible:      b.Visible(),
		VisibleCount: b.visible,
		TotalCount:   len(b.templates),
		HasMore:      b.HasMore(),
	}
	if b.lastErr != nil {
		view.Error = b.lastErr.Error()
	}
	return view
}

// templateNames adapts a template slice to fuzzy.Source
type templateNames []models.Template

func (t templateNames) String(i int) string { return t[i].Name }
func (t templateNames) Len() int            { return len(t) }
