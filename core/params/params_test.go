package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"event-api/core/constants"

	"github.com/labstack/echo/v4"
)

func paramsFor(query string, keys ...string) *QueryParams {
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	c := echo.New().NewContext(req, httptest.NewRecorder())
	return NewQueryParams(c, keys...)
}

func TestNewQueryParams(t *testing.T) {
	p := paramsFor("page=3&page_size=20&search=+go+&role=member&ignored=x", "role", "event")

	if p.PageNumber != 3 || p.PageSize != 20 || p.Offset() != 40 {
		t.Fatalf("paging = %+v offset %d", p, p.Offset())
	}
	if p.Search != "go" {
		t.Fatalf("search = %q", p.Search)
	}
	if v, ok := p.Filter("role"); !ok || v != "member" {
		t.Fatalf("role filter = %q, %v", v, ok)
	}
	if _, ok := p.Filter("event"); ok {
		t.Fatal("empty filter should be absent")
	}
	if _, ok := p.Filter("ignored"); ok {
		t.Fatal("unlisted key became a filter")
	}
}

func TestNewQueryParamsDefaults(t *testing.T) {
	p := paramsFor("page=0&page_size=abc")
	if p.PageNumber != constants.DefaultPageNumber || p.PageSize != constants.DefaultPageSize {
		t.Fatalf("defaults = %+v", p)
	}

	huge := paramsFor("page=9223372036854775807&page_size=100")
	if huge.PageNumber != maxPageNumber || huge.Offset() < 0 {
		t.Fatalf("page = %d offset = %d", huge.PageNumber, huge.Offset())
	}

	capped := paramsFor("page_size=1000")
	if capped.PageSize != constants.MaxPageSize {
		t.Fatalf("page_size = %d, want %d", capped.PageSize, constants.MaxPageSize)
	}
}
