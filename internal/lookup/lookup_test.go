package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/users/", 5*time.Second), &calls
}

func TestClient_FetchSuccess(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat" {
			t.Errorf("path = %q, want /users/octocat", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"login":"octocat","name":"The Octocat","blog":"https://github.blog"}`))
	})

	rec, err := client.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rec.Login != "octocat" {
		t.Errorf("Login = %q, want octocat", rec.Login)
	}
	if rec.Blog() != "https://github.blog" {
		t.Errorf("Blog() = %q", rec.Blog())
	}
	if !rec.LastFetchedAt.IsZero() {
		t.Error("fresh records should carry no lastRequestTime")
	}
	if *calls != 1 {
		t.Errorf("calls = %d, want 1", *calls)
	}
}

func TestClient_FetchNotFound(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	_, err := client.Fetch(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Fetch() error = %v, want ErrNotFound", err)
	}
	if err.Error() != "User not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if *calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", *calls)
	}
}

func TestClient_FetchServerError(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Fetch(context.Background(), "octocat")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Fetch() error = %v, want *TransportError", err)
	}
	if te.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", te.Status, http.StatusForbidden)
	}
	if *calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", *calls)
	}
}

func TestClient_FetchBadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>"},
		{"missing login", `{"name":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			_, err := client.Fetch(context.Background(), "octocat")
			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("Fetch() error = %v, want *TransportError", err)
			}
		})
	}
}

func TestClient_FetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/users/"
	srv.Close()

	_, err := NewClient(base, time.Second).Fetch(context.Background(), "octocat")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Fetch() error = %v, want *TransportError", err)
	}
	if te.Status != 0 {
		t.Errorf("Status = %d, want 0", te.Status)
	}
	if !strings.Contains(te.Error(), "lookup octocat") {
		t.Errorf("Error() = %q", te.Error())
	}
}

func TestClient_Token(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/users/", time.Second, WithToken("s3cret"))
	if _, err := client.Fetch(context.Background(), "octocat"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != "Bearer s3cret" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestClient_URL(t *testing.T) {
	c := NewClient("https://api.github.com/users/", time.Second)
	if got := c.URL("octocat"); got != "https://api.github.com/users/octocat" {
		t.Errorf("URL() = %q", got)
	}
}
