package service

import (
	"context"
	"errors"
	"testing"

	"meme-generator/models"
)

func TestEditorSessionLoad(t *testing.T) {
	client := &fakeCatalogClient{templates: sampleTemplates(5)}
	session := NewEditorSession(client, SessionOptions{PageSize: 4, PageIncrement: 4})

	if got := session.Snapshot().Catalog.Status; got != models.CatalogIdle {
		t.Fatalf("status before load = %s, want idle", got)
	}
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap := session.Snapshot()
	if snap.Catalog.Status != models.CatalogReady {
		t.Fatalf("status = %s, want ready", snap.Catalog.Status)
	}
	if len(snap.Catalog.Visible) != 4 || !snap.Catalog.HasMore {
		t.Fatalf("unexpected catalog view: %+v", snap.Catalog)
	}
	if snap.Selected != nil || len(snap.Captions) != 0 {
		t.Fatalf("nothing should be selected after load: %+v", snap)
	}

	if err := session.Load(context.Background()); !errors.Is(err, ErrCatalogAlreadyLoaded) {
		t.Fatalf("second Load: expected ErrCatalogAlreadyLoaded, got %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("catalog fetched %d times, want 1", client.calls)
	}
}

func TestEditorSessionRetry(t *testing.T) {
	client := &fakeCatalogClient{err: ErrCatalogUnavailable}
	session := NewEditorSession(client, SessionOptions{PageSize: 4, PageIncrement: 4})

	if err := session.Retry(context.Background()); !errors.Is(err, ErrRetryNotAllowed) {
		t.Fatalf("Retry before load: expected ErrRetryNotAllowed, got %v", err)
	}

	if err := session.Load(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("Load: expected ErrCatalogUnavailable, got %v", err)
	}
	view := session.Snapshot().Catalog
	if view.Status != models.CatalogFailed || view.Error == "" {
		t.Fatalf("expected failed status with message, got %+v", view)
	}
	if len(view.Visible) != 0 {
		t.Fatalf("failed catalog should be empty, got %d", len(view.Visible))
	}

	client.err = nil
	client.templates = sampleTemplates(2)
	if err := session.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	view = session.Snapshot().Catalog
	if view.Status != models.CatalogReady || len(view.Visible) != 2 || view.HasMore {
		t.Fatalf("unexpected view after retry: %+v", view)
	}

	if err := session.Retry(context.Background()); !errors.Is(err, ErrRetryNotAllowed) {
		t.Fatalf("Retry after success: expected ErrRetryNotAllowed, got %v", err)
	}
}

func TestEditorSessionEmptyCatalog(t *testing.T) {
	session := newLoadedSession(t, 0, true)

	view := session.Snapshot().Catalog
	if view.Status != models.CatalogEmpty || view.HasMore {
		t.Fatalf("unexpected empty view: %+v", view)
	}
	if view := session.LoadMore(); view.VisibleCount != 0 {
		t.Fatalf("LoadMore on empty catalog = %+v", view)
	}
}

func TestEditorSessionLoadMore(t *testing.T) {
	session := newLoadedSession(t, 5, true)

	view := session.LoadMore()
	if view.VisibleCount != 5 || view.HasMore {
		t.Fatalf("after LoadMore: %+v", view)
	}
	view = session.LoadMore()
	if view.VisibleCount != 5 {
		t.Fatalf("LoadMore at the end changed the count: %+v", view)
	}
}

func TestEditorSessionShowAll(t *testing.T) {
	session := newLoadedSession(t, 9, true)

	view := session.ShowAll()
	if view.VisibleCount != 9 || view.HasMore {
		t.Fatalf("after ShowAll: %+v", view)
	}
}

func TestEditorSessionSelect(t *testing.T) {
	session := newLoadedSession(t, 5, true)
	before := session.Snapshot().Catalog

	tmpl, err := session.Select("2")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if tmpl.ID != "2" {
		t.Fatalf("selected %q, want 2", tmpl.ID)
	}
	snap := session.Snapshot()
	if snap.Selected == nil || snap.Selected.ImageURL != "u2" {
		t.Fatalf("customization surface not active: %+v", snap.Selected)
	}

	if _, err := session.Select("3"); err != nil {
		t.Fatalf("reselect: %v", err)
	}
	after := session.Snapshot()
	if after.Selected.ID != "3" {
		t.Fatalf("selected %q after reselect, want 3", after.Selected.ID)
	}
	if after.Catalog.VisibleCount != before.VisibleCount || after.Catalog.TotalCount != before.TotalCount {
		t.Fatalf("selection changed the catalog: before=%+v after=%+v", before, after.Catalog)
	}

	// selecting a template beyond the visible prefix is allowed
	if _, err := session.Select("5"); err != nil {
		t.Fatalf("Select(5): %v", err)
	}

	if _, err := session.Select("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if got := session.Selected(); got == nil || got.ID != "5" {
		t.Fatalf("failed select changed the selection: %+v", got)
	}
}

func TestEditorSessionAddCaptionWithoutTemplate(t *testing.T) {
	session := newLoadedSession(t, 5, true)

	if _, err := session.AddCaption(); !errors.Is(err, ErrNoActiveSurface) {
		t.Fatalf("expected ErrNoActiveSurface, got %v", err)
	}
	if n := len(session.Snapshot().Captions); n != 0 {
		t.Fatalf("caption added without a template: %d", n)
	}
}

func TestEditorSessionBottomTextScenario(t *testing.T) {
	session := newLoadedSession(t, 5, true)

	if _, err := session.Select("2"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := session.AddCaption(); err != nil {
			t.Fatalf("AddCaption: %v", err)
		}
	}
	if err := session.SetCaptionTextAt(1, "bottom text"); err != nil {
		t.Fatalf("SetCaptionTextAt: %v", err)
	}

	captions := session.Snapshot().Captions
	if len(captions) != 2 {
		t.Fatalf("expected 2 captions, got %d", len(captions))
	}
	if captions[0].Text != "" {
		t.Errorf("captions[0].Text = %q, want empty", captions[0].Text)
	}
	if captions[1].Text != "bottom text" {
		t.Errorf("captions[1].Text = %q, want bottom text", captions[1].Text)
	}
}

func TestEditorSessionCaptionUpdatesByID(t *testing.T) {
	session := newLoadedSession(t, 5, true)
	session.Select("1")
	first, _ := session.AddCaption()
	second, _ := session.AddCaption()

	if err := session.SetCaptionText(second.ID, "hello"); err != nil {
		t.Fatalf("SetCaptionText: %v", err)
	}
	if err := session.SetCaptionPosition(first.ID, models.Position{X: 10, Y: 200}); err != nil {
		t.Fatalf("SetCaptionPosition: %v", err)
	}
	if err := session.SetCaptionPositionAt(1, models.Position{X: 70, Y: 30}); err != nil {
		t.Fatalf("SetCaptionPositionAt: %v", err)
	}
	if err := session.SetCaptionText("nope", "x"); !errors.Is(err, ErrCaptionNotFound) {
		t.Fatalf("expected ErrCaptionNotFound, got %v", err)
	}

	captions := session.Snapshot().Captions
	if captions[0].Position != (models.Position{X: 10, Y: 200}) || captions[0].Text != "" {
		t.Errorf("captions[0] = %+v", captions[0])
	}
	if captions[1].Position != (models.Position{X: 70, Y: 30}) || captions[1].Text != "hello" {
		t.Errorf("captions[1] = %+v", captions[1])
	}
}

func TestEditorSessionClearCaptionsOnSelect(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		session := newLoadedSession(t, 5, true)
		session.Select("1")
		session.AddCaption()

		// reselecting the same template keeps the captions
		session.Select("1")
		if n := len(session.Snapshot().Captions); n != 1 {
			t.Fatalf("same template reselect dropped captions: %d", n)
		}

		session.Select("2")
		if n := len(session.Snapshot().Captions); n != 0 {
			t.Fatalf("expected captions cleared, got %d", n)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		session := newLoadedSession(t, 5, false)
		session.Select("1")
		session.AddCaption()
		session.Select("2")
		if n := len(session.Snapshot().Captions); n != 1 {
			t.Fatalf("expected captions kept, got %d", n)
		}
	})
}

func TestEditorSessionSearch(t *testing.T) {
	session := NewEditorSession(&fakeCatalogClient{templates: []models.Template{
		{ID: "1", Name: "Drake Hotline Bling", ImageURL: "u1"},
		{ID: "2", Name: "Two Buttons", ImageURL: "u2"},
	}}, SessionOptions{PageSize: 4, PageIncrement: 4})
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	results := session.Search("buttons")
	if len(results) != 1 || results[0].ID != "2" {
		t.Fatalf("Search = %+v", results)
	}
}
