package models

// CatalogStatus is the load state of the template catalog
type CatalogStatus string

const (
	CatalogIdle    CatalogStatus = "idle"    // not loaded yet
	CatalogLoading CatalogStatus = "loading" // fetch in flight
	CatalogReady   CatalogStatus = "ready"   // loaded with at least one template
	CatalogEmpty   CatalogStatus = "empty"   // loaded, catalog has no templates
	CatalogFailed  CatalogStatus = "failed"  // fetch failed, retry allowed
)

// CatalogView represents the browser state shown to the user
type CatalogView struct {
	Status       CatalogStatus `json:"status"`
	Error        string        `json:"error,omitempty"`
	Visible      []Template    `json:"visible"`
	VisibleCount int           `json:"visibleCount"`
	TotalCount   int           `json:"totalCount"`
	HasMore      bool          `json:"hasMore"`
}
