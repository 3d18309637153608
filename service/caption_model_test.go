package service

import (
	"errors"
	"testing"

	"meme-generator/models"
)

func TestCaptionListAdd(t *testing.T) {
	l := NewCaptionList()
	for i := 1; i <= 3; i++ {
		c := l.Add()
		if l.Len() != i {
			t.Fatalf("Len = %d, want %d", l.Len(), i)
		}
		if c.Text != "" {
			t.Errorf("new caption text = %q, want empty", c.Text)
		}
		if c.Position != (models.Position{X: 50, Y: 50}) {
			t.Errorf("new caption position = %+v, want (50,50)", c.Position)
		}
		if c.ID == "" {
			t.Error("new caption has no id")
		}
	}

	snapshot := l.Snapshot()
	if snapshot[0].ID == snapshot[1].ID || snapshot[1].ID == snapshot[2].ID {
		t.Fatalf("caption ids are not unique: %+v", snapshot)
	}
}

func TestCaptionListSetTextOnlyTouchesTarget(t *testing.T) {
	l := NewCaptionList()
	a, b, c := l.Add(), l.Add(), l.Add()
	if err := l.SetPosition(a.ID, models.Position{X: 1, Y: 2}); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	before := l.Snapshot()

	if err := l.SetText(b.ID, "middle"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	after := l.Snapshot()

	if after[1].Text != "middle" || after[1].Position != before[1].Position {
		t.Errorf("target caption = %+v", after[1])
	}
	if after[0] != before[0] || after[2] != before[2] {
		t.Errorf("other captions changed: before=%+v after=%+v", before, after)
	}
	if after[2].ID != c.ID {
		t.Error("caption order changed")
	}
}

func TestCaptionListSetPositionOnlyTouchesTarget(t *testing.T) {
	l := NewCaptionList()
	l.Add()
	second := l.Add()
	l.SetText(second.ID, "keep me")
	before := l.Snapshot()

	pos := models.Position{X: 120.5, Y: 8}
	if err := l.SetPositionAt(1, pos); err != nil {
		t.Fatalf("SetPositionAt: %v", err)
	}
	after := l.Snapshot()

	if after[1].Position != pos || after[1].Text != "keep me" {
		t.Errorf("target caption = %+v", after[1])
	}
	if after[0] != before[0] {
		t.Errorf("other caption changed: %+v", after[0])
	}
}

func TestCaptionListUnknownTargets(t *testing.T) {
	l := NewCaptionList()
	l.Add()
	before := l.Snapshot()

	if err := l.SetText("nope", "x"); !errors.Is(err, ErrCaptionNotFound) {
		t.Errorf("SetText unknown id: %v", err)
	}
	if err := l.SetPosition("nope", models.Position{}); !errors.Is(err, ErrCaptionNotFound) {
		t.Errorf("SetPosition unknown id: %v", err)
	}
	for _, i := range []int{-1, 1, 5} {
		if err := l.SetTextAt(i, "x"); !errors.Is(err, ErrCaptionNotFound) {
			t.Errorf("SetTextAt(%d): %v", i, err)
		}
		if err := l.SetPositionAt(i, models.Position{}); !errors.Is(err, ErrCaptionNotFound) {
			t.Errorf("SetPositionAt(%d): %v", i, err)
		}
	}

	after := l.Snapshot()
	if len(after) != 1 || after[0] != before[0] {
		t.Fatalf("failed updates changed the list: %+v", after)
	}
}

func TestCaptionListReset(t *testing.T) {
	l := NewCaptionList()
	l.Add()
	l.Add()
	l.Reset()
	if l.Len() != 0 || len(l.Snapshot()) != 0 {
		t.Fatalf("expected empty list after Reset, got %d", l.Len())
	}
}
