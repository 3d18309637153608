package models

// Template represents a meme template from the catalog
type Template struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	BoxCount int    `json:"boxCount,omitempty"`
}

// CatalogResponse represents the body returned by the template catalog endpoint.
// Success is optional; only an explicit false marks a failed response.
// Example: {"success": true, "data": {"memes": [{"id": "181913649", "name": "Drake Hotline Bling", "url": "https://i.imgflip.com/30b1gx.jpg", "width": 1200, "height": 1200, "box_count": 2}]}}
type CatalogResponse struct {
	Success *bool `json:"success,omitempty"`
	Data    *struct {
		Memes *[]CatalogEntry `json:"memes"`
	} `json:"data"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// CatalogEntry is a single template as delivered by the catalog endpoint
type CatalogEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	BoxCount int    `json:"box_count"`
}

// ToTemplate converts a catalog entry into a Template
func (e CatalogEntry) ToTemplate() Template {
	return Template{
		ID:       e.ID,
		Name:     e.Name,
		ImageURL: e.URL,
		Width:    e.Width,
		Height:   e.Height,
		BoxCount: e.BoxCount,
	}
}
