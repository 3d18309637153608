package models

// Default placement for a newly added caption, in pixels from the surface's top-left corner
const (
	DefaultCaptionX = 50
	DefaultCaptionY = 50
)

// Position is a pixel offset from the top-left origin of the composition surface
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Caption represents a text overlay on the composition surface
type Caption struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Position Position `json:"position"`
}

// UpdateCaptionTextRequest represents the request body for updating a caption's text
type UpdateCaptionTextRequest struct {
	Text string `json:"text"`
}

// UpdateCaptionPositionRequest represents the request body for committing a drag
// Example: {"x": 120, "y": 32}
type UpdateCaptionPositionRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}
