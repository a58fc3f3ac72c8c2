package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRegister_GuardsAPIButNotFileLinks(t *testing.T) {
	e := echo.New()
	var authed, idem int
	auth := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authed++
			return c.NoContent(http.StatusUnauthorized)
		}
	}
	idemMW := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idem++
			return next(c)
		}
	}
	Register(e, Handlers{Health: NewHandler(nil)}, auth, idemMW)

	want := map[string]bool{
		"GET /health":                                      true,
		"GET /api/files/:token":                            true,
		"PUT /api/people/permissions/:role_id/flags/:flag": true,
		"PUT /api/finance/view-mode":                       true,
		"GET /api/finance/purchases/export":                true,
		"POST /api/finance/purchases/:id/pay":              true,
		"POST /api/finance/reimburses/:id/approve":         true,
		"POST /api/finance/funding-sources/:id/move":       true,
		"POST /api/finance/files":                          true,
		"PUT /api/finance/files":                           true,
	}
	for _, r := range e.Routes() {
		delete(want, r.Method+" "+r.Path)
	}
	if len(want) != 0 {
		t.Fatalf("routes not registered: %v", want)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || authed != 0 {
		t.Fatalf("/health must be public: %d authed=%d", rec.Code, authed)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/finance/purchases", nil))
	if rec.Code != http.StatusUnauthorized || authed != 1 || idem != 0 {
		t.Fatalf("api routes must pass auth first: %d authed=%d idem=%d", rec.Code, authed, idem)
	}
}
