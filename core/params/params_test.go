package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsForQuery(t *testing.T, query string) *QueryParams {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return NewQueryParams(echo.New().NewContext(req, rec))
}

func TestNewQueryParamsDefaults(t *testing.T) {
	p := paramsForQuery(t, "")
	if p.PageNumber != DefaultPageNumber {
		t.Fatalf("expected page number %d, got %d", DefaultPageNumber, p.PageNumber)
	}
	if p.PageSize != DefaultPageSize {
		t.Fatalf("expected page size %d, got %d", DefaultPageSize, p.PageSize)
	}
	if p.Search != "" {
		t.Fatalf("expected empty search, got %q", p.Search)
	}
}

func TestNewQueryParamsParsesValues(t *testing.T) {
	p := paramsForQuery(t, "page_number=3&page_size=50&search=asha")
	if p.PageNumber != 3 {
		t.Fatalf("expected page number 3, got %d", p.PageNumber)
	}
	if p.PageSize != 50 {
		t.Fatalf("expected page size 50, got %d", p.PageSize)
	}
	if p.Search != "asha" {
		t.Fatalf("expected search asha, got %q", p.Search)
	}
}

func TestNewQueryParamsClampsAndIgnoresGarbage(t *testing.T) {
	p := paramsForQuery(t, "page_number=-1&page_size=9999")
	if p.PageNumber != DefaultPageNumber {
		t.Fatalf("expected default page number for negative input, got %d", p.PageNumber)
	}
	if p.PageSize != MaxPageSize {
		t.Fatalf("expected page size clamped to %d, got %d", MaxPageSize, p.PageSize)
	}

	p = paramsForQuery(t, "page_number=abc")
	if p.PageNumber != DefaultPageNumber {
		t.Fatalf("expected default page number for garbage input, got %d", p.PageNumber)
	}
}
