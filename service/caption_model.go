package service

import (
	"errors"

	"github.com/google/uuid"

	"meme-generator/models"
)

// ErrCaptionNotFound is returned when an update addresses a caption that does not exist
var ErrCaptionNotFound = errors.New("caption not found")

// CaptionList is the ordered set of captions for the active editing session.
// Captions are addressed by a stable id assigned at creation; order is insertion order.
type CaptionList struct {
	captions []models.Caption
	newID    func() string
}

// NewCaptionList creates an empty caption list
func NewCaptionList() *CaptionList {
	return &CaptionList{newID: uuid.NewString}
}

// Add appends a caption with empty text at the default position and returns it
func (l *CaptionList) Add() models.Caption {
	c := models.Caption{
		ID:       l.newID(),
		Position: models.Position{X: models.DefaultCaptionX, Y: models.DefaultCaptionY},
	}
	l.captions = append(l.captions, c)
	return c
}

// SetText replaces the text of the caption with the given id
func (l *CaptionList) SetText(id, text string) error {
	i := l.indexOf(id)
	if i < 0 {
		return ErrCaptionNotFound
	}
	l.captions[i].Text = text
	return nil
}

// SetPosition replaces the position of the caption with the given id
func (l *CaptionList) SetPosition(id string, pos models.Position) error {
	i := l.indexOf(id)
	if i < 0 {
		return ErrCaptionNotFound
	}
	l.captions[i].Position = pos
	return nil
}

// IDAt resolves a list index to the caption id at that index
func (l *CaptionList) IDAt(index int) (string, error) {
	if index < 0 || index >= len(l.captions) {
		return "", ErrCaptionNotFound
	}
	return l.captions[index].ID, nil
}

// SetTextAt replaces the text of the caption at index
func (l *CaptionList) SetTextAt(index int, text string) error {
	id, err := l.IDAt(index)
	if err != nil {
		return err
	}
	return l.SetText(id, text)
}

// SetPositionAt replaces the position of the caption at index
func (l *CaptionList) SetPositionAt(index int, pos models.Position) error {
	id, err := l.IDAt(index)
	if err != nil {
		return err
	}
	return l.SetPosition(id, pos)
}

// Get returns the caption with the given id
func (l *CaptionList) Get(id string) (models.Caption, error) {
	i := l.indexOf(id)
	if i < 0 {
		return models.Caption{}, ErrCaptionNotFound
	}
	return l.captions[i], nil
}

// Len returns the number of captions
func (l *CaptionList) Len() int {
	return len(l.captions)
}

// Snapshot returns a copy of the captions in insertion order
func (l *CaptionList) Snapshot() []models.Caption {
	out := make([]models.Caption, len(l.captions))
	copy(out, l.captions)
	return out
}

// Reset removes all captions
func (l *CaptionList) Reset() {
	l.captions = nil
}

func (l *CaptionList) indexOf(id string) int {
	for i := range l.captions {
		if l.captions[i].ID == id {
			return i
		}
	}
	return -1
}
