package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serve(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMountServesHealthAndDocs(t *testing.T) {
	e := echo.New()
	Mount(e, Dependencies{})

	if rec := serve(e, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	if rec := serve(e, "/swagger/index.html"); rec.Code != http.StatusOK {
		t.Fatalf("swagger ui status = %d", rec.Code)
	}

	rec := serve(e, "/swagger/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status = %d", rec.Code)
	}
	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc.json: %v", err)
	}
	if doc.BasePath != "/api" {
		t.Fatalf("basePath = %q", doc.BasePath)
	}
	for path, method := range map[string]string{
		"/register/":          "post",
		"/events/":            "post",
		"/event/{id}/":        "delete",
		"/participants/":      "post",
		"/participants/{id}/": "put",
		"/user/{id}/":         "get",
	} {
		if _, ok := doc.Paths[path][method]; !ok {
			t.Errorf("doc.json has no %s %s", method, path)
		}
	}
}

func TestMountedRoutesRequireAuth(t *testing.T) {
	e := echo.New()
	Mount(e, Dependencies{})

	for _, path := range []string{"/api/events/", "/api/participants/", "/api/list_users/"} {
		if rec := serve(e, path); rec.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, rec.Code)
		}
	}
}
