// Package recipe reads meme recipes: a template id plus captions, written in YAML,
// and replays them onto an editing session.
//
//	template: "181913649"
//	captions:
//	  - text: "writing Go"
//	    x: 160
//	    y: 40
//	  - text: "writing YAML"
package recipe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"meme-generator/models"
)

// Recipe describes a meme to render without the interactive editor
type Recipe struct {
	Template string    `yaml:"template"`
	Captions []Caption `yaml:"captions"`
}

// Caption is one caption of a recipe. Missing coordinates use the default caption position.
type Caption struct {
	Text string   `yaml:"text"`
	X    *float64 `yaml:"x,omitempty"`
	Y    *float64 `yaml:"y,omitempty"`
}

// Editor is the part of the editing session a recipe drives
type Editor interface {
	Select(id string) (models.Template, error)
	AddCaption() (models.Caption, error)
	SetCaptionText(id, text string) error
	SetCaptionPosition(id string, pos models.Position) error
}

// Load reads and validates a recipe file
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates recipe YAML
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}
	r.Template = strings.TrimSpace(r.Template)
	if r.Template == "" {
		return nil, fmt.Errorf("recipe: template is required")
	}
	return &r, nil
}

// Position returns the caption position, falling back to the default for unset coordinates
func (c Caption) Position() models.Position {
	pos := models.Position{X: models.DefaultCaptionX, Y: models.DefaultCaptionY}
	if c.X != nil {
		pos.X = *c.X
	}
	if c.Y != nil {
		pos.Y = *c.Y
	}
	return pos
}

// Apply selects the recipe's template and adds its captions in order
func (r *Recipe) Apply(editor Editor) error {
	if _, err := editor.Select(r.Template); err != nil {
		return fmt.Errorf("recipe: select template %s: %w", r.Template, err)
	}
	for i, c := range r.Captions {
		caption, err := editor.AddCaption()
		if err != nil {
			return fmt.Errorf("recipe: caption %d: %w", i, err)
		}
		if err := editor.SetCaptionText(caption.ID, c.Text); err != nil {
			return fmt.Errorf("recipe: caption %d: %w", i, err)
		}
		if err := editor.SetCaptionPosition(caption.ID, c.Position()); err != nil {
			return fmt.Errorf("recipe: caption %d: %w", i, err)
		}
	}
	return nil
}
