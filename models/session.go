package models

// SessionSnapshot is a read-only copy of the editing session state
type SessionSnapshot struct {
	Catalog  CatalogView `json:"catalog"`
	Selected *Template   `json:"selected,omitempty"`
	Captions []Caption   `json:"captions"`
}

// SelectTemplateRequest represents the request body for selecting a template
type SelectTemplateRequest struct {
	ID string `json:"id"`
}
