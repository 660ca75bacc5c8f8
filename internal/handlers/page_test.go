package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/template/html/v3"

	"ghfavorites/internal/favorites"
	"ghfavorites/internal/session"
	"ghfavorites/internal/testutil"
)

func setupPage(t *testing.T) (*fiber.App, *testutil.MemStore) {
	t.Helper()
	store := &testutil.MemStore{}
	svc := favorites.NewService(store, testutil.NewStubSource())

	app := fiber.New(fiber.Config{
		Views: html.New("../../views", ".html"),
	})
	NewPageHandler(session.New(svc), "GitHub Favorites").Register(app)
	return app, store
}

func send(t *testing.T, app *fiber.App, method, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, _ := http.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(raw)
}

func isRedirect(resp *http.Response) bool {
	return resp.StatusCode >= 300 && resp.StatusCode < 400
}

func TestPage_EmptyIndex(t *testing.T) {
	app, _ := setupPage(t)

	resp, body := send(t, app, "GET", "/", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "GitHub Favorites") {
		t.Error("page title missing")
	}
	if strings.Contains(body, `class="result"`) {
		t.Error("no result should be rendered before a search")
	}
}

func TestPage_SearchAndAddFavorite(t *testing.T) {
	app, store := setupPage(t)

	resp, _ := send(t, app, "POST", "/search", url.Values{"search": {"octocat"}})
	if !isRedirect(resp) {
		t.Fatalf("search status = %d, want redirect", resp.StatusCode)
	}

	_, body := send(t, app, "GET", "/", nil)
	if !strings.Contains(body, "Name of octocat") {
		t.Error("active result not rendered")
	}
	if !strings.Contains(body, `action="/favorites"`) {
		t.Error("add favorite form missing")
	}

	resp, _ = send(t, app, "POST", "/favorites", url.Values{})
	if !isRedirect(resp) {
		t.Fatalf("add status = %d, want redirect", resp.StatusCode)
	}
	if len(store.Snapshot()) != 1 {
		t.Fatalf("persisted %d favorites, want 1", len(store.Snapshot()))
	}

	_, body = send(t, app, "GET", "/", nil)
	if !strings.Contains(body, `action="/favorites/octocat/delete"`) {
		t.Error("remove favorite form missing")
	}
	if !strings.Contains(body, `href="/favorites/octocat"`) {
		t.Error("favorites list missing")
	}

	resp, _ = send(t, app, "POST", "/favorites/octocat/delete", url.Values{})
	if !isRedirect(resp) {
		t.Fatalf("remove status = %d, want redirect", resp.StatusCode)
	}
	if len(store.Snapshot()) != 0 {
		t.Errorf("persisted %d favorites, want 0", len(store.Snapshot()))
	}
}

func TestPage_SearchNotFound(t *testing.T) {
	app, _ := setupPage(t)

	send(t, app, "POST", "/search", url.Values{"search": {"nonexistent"}})
	_, body := send(t, app, "GET", "/", nil)
	if !strings.Contains(body, "User not found") {
		t.Error("lookup error not rendered")
	}
}

func TestPage_InvalidSearch(t *testing.T) {
	app, _ := setupPage(t)

	resp, _ := send(t, app, "POST", "/search", url.Values{"search": {"../etc"}})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPage_ShowUnknownFavorite(t *testing.T) {
	app, _ := setupPage(t)

	resp, _ := send(t, app, "GET", "/favorites/ghost", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPage_SearchedHandleSurvivesLaterRequests(t *testing.T) {
	app, store := setupPage(t)

	send(t, app, "POST", "/search", url.Values{"search": {"octocat"}})
	send(t, app, "POST", "/favorites", url.Values{})
	send(t, app, "GET", "/favorites/torvalds", nil)
	send(t, app, "POST", "/search", url.Values{"search": {"mona-lisa"}})

	saved := store.Snapshot()
	if len(saved) != 1 || saved[0].Login != "octocat" {
		t.Fatalf("persisted = %+v, want only octocat", saved)
	}
	_, body := send(t, app, "GET", "/", nil)
	if !strings.Contains(body, `href="/favorites/octocat"`) {
		t.Error("favorites list lost the octocat handle")
	}
}
