package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meme-generator/models"
)

func TestCatalogClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"memes":[
			{"id":"3","name":"C","url":"u3","width":500,"height":400,"box_count":2},
			{"id":"1","name":"A","url":"u1"},
			{"id":"","name":"no id","url":"u9"},
			{"id":"7","name":"no url","url":""},
			{"id":"3","name":"duplicate","url":"u3b"},
			{"id":"2","name":"B","url":"u2"}
		]}}`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, 5*time.Second)
	templates, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	wantIDs := []string{"3", "1", "2"}
	if len(templates) != len(wantIDs) {
		t.Fatalf("expected %d templates, got %d: %+v", len(wantIDs), len(templates), templates)
	}
	for i, id := range wantIDs {
		if templates[i].ID != id {
			t.Errorf("templates[%d].ID = %q, want %q", i, templates[i].ID, id)
		}
	}
	if templates[0].Name != "C" || templates[0].ImageURL != "u3" {
		t.Errorf("duplicate id should keep the first entry, got %+v", templates[0])
	}
	if templates[0].Width != 500 || templates[0].Height != 400 || templates[0].BoxCount != 2 {
		t.Errorf("dimensions not carried over: %+v", templates[0])
	}
}

func TestCatalogClientFetchFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"data":`))
			},
		},
		{
			name: "missing memes",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"data":{}}`))
			},
		},
		{
			name: "missing data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true}`))
			},
		},
		{
			name: "unsuccessful response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"error_message":"rate limited"}`))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			_, err := NewCatalogClient(server.URL, 5*time.Second).Fetch(context.Background())
			if !errors.Is(err, ErrCatalogUnavailable) {
				t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
			}
		})
	}

	t.Run("unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := NewCatalogClient(url, time.Second).Fetch(context.Background())
		if !errors.Is(err, ErrCatalogUnavailable) {
			t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
		}
	})
}

func TestCatalogClientFetchWithoutSuccessField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"memes":[
			{"id":"1","name":"A","url":"u1"},
			{"id":"2","name":"B","url":"u2"},
			{"id":"3","name":"C","url":"u3"},
			{"id":"4","name":"D","url":"u4"},
			{"id":"5","name":"E","url":"u5"}
		]}}`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, 5*time.Second)
	templates, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(templates) != 5 {
		t.Fatalf("expected 5 templates, got %d", len(templates))
	}

	session := NewEditorSession(client, SessionOptions{PageSize: 4, PageIncrement: 4})
	if err := session.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	view := session.Snapshot().Catalog
	if view.Status != models.CatalogReady || len(view.Visible) != 4 || view.TotalCount != 5 {
		t.Fatalf("unexpected catalog view: %+v", view)
	}
}

func TestCatalogClientFetchEmptyCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"memes":[]}}`))
	}))
	defer server.Close()

	templates, err := NewCatalogClient(server.URL, 5*time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(templates) != 0 {
		t.Fatalf("expected no templates, got %d", len(templates))
	}
}
