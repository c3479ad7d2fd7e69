package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func servePosts(t *testing.T, n int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("_limit"); got != "12" {
			t.Errorf("_limit = %q, want 12", got)
		}
		posts := make([]post, n)
		for i := range posts {
			posts[i] = post{
				ID:    i + 1,
				Title: fmt.Sprintf("title %d", i+1),
				Body:  strings.Repeat("b", 100),
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(posts)
	}))
}

func TestFetch(t *testing.T) {
	srv := servePosts(t, 12)
	defer srv.Close()

	l := NewLoader(WithURL(srv.URL), WithPriceFunc(func() int { return 42 }))
	products, err := l.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(products) != 12 {
		t.Fatalf("expected 12 products, got %d", len(products))
	}

	p := products[0]
	if p.ID != 1 || p.Title != "title 1" {
		t.Errorf("unexpected product identity: %+v", p)
	}
	if want := strings.Repeat("b", 80) + "..."; p.Description != want {
		t.Errorf("description = %q, want 80 chars plus ellipsis", p.Description)
	}
	if p.Price != 42 {
		t.Errorf("price = %v, want 42", p.Price)
	}
	if p.Image != "https://picsum.photos/seed/1/300/200.jpg" {
		t.Errorf("image = %q", p.Image)
	}
}

func TestFetch_CapsToLimit(t *testing.T) {
	srv := servePosts(t, 30)
	defer srv.Close()

	products, err := NewLoader(WithURL(srv.URL)).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(products) != DefaultLimit {
		t.Errorf("expected %d products, got %d", DefaultLimit, len(products))
	}
}

func TestFetch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not":"a list"`))
			},
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte("null"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			products, err := NewLoader(WithURL(srv.URL)).Fetch(context.Background())
			if !errors.Is(err, ErrFetch) {
				t.Errorf("expected ErrFetch, got %v", err)
			}
			if products != nil {
				t.Errorf("expected no partial results, got %d products", len(products))
			}
		})
	}

	t.Run("unreachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		if _, err := NewLoader(WithURL(addr)).Fetch(context.Background()); !errors.Is(err, ErrFetch) {
			t.Errorf("expected ErrFetch, got %v", err)
		}
	})
}

func TestRandomPriceRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		p := randomPrice()
		if p < 10 || p >= 110 {
			t.Fatalf("price %d outside [10,110)", p)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 80, "short"},
		{"abcdef", 3, "abc"},
		{"héllo wörld", 4, "héll"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
