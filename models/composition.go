package models

// Composition is everything needed to draw the composition surface:
// the selected template and its captions in insertion order
type Composition struct {
	Template Template  `json:"template"`
	Captions []Caption `json:"captions"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
}
