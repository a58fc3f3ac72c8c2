package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"opsplatform-backend/internal/domain/access"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// fakeAuth marks every request as coming from user, or from nobody when empty.
func fakeAuth(user string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user != "" {
				WithActor(c, access.Actor{UserID: user})
			}
			return next(c)
		}
	}
}

func setupEcho(rdb *redis.Client, user string, handler echo.HandlerFunc) *echo.Echo {
	logger, _ := logtest.NewNullLogger()
	e := echo.New()
	e.HideBanner = true
	e.Use(fakeAuth(user), IdempotencyMiddleware(rdb, 2*time.Minute, logger))
	e.POST("/purchases", handler)
	e.GET("/purchases", handler)
	return e
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func validHeaders() map[string]string {
	return map[string]string{
		HeaderRequestID: strings.Repeat("a", 32),
		HeaderRequestAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func countingHandler(n *int32) echo.HandlerFunc {
	return func(c echo.Context) error {
		atomic.AddInt32(n, 1)
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	}
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, "u1", countingHandler(&calls))
	if rec := doReq(t, e, http.MethodGet, "/purchases", nil, nil); rec.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("GET => code %d calls %d", rec.Code, calls)
	}
}

func Test_ValidationFailures(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, "u1", countingHandler(&calls))

	cases := map[string]func(h map[string]string){
		"missing id":   func(h map[string]string) { delete(h, HeaderRequestID) },
		"bad id":       func(h map[string]string) { h[HeaderRequestID] = "NOT-VALID" },
		"missing at":   func(h map[string]string) { delete(h, HeaderRequestAt) },
		"bad at":       func(h map[string]string) { h[HeaderRequestAt] = "not-a-time" },
		"skewed past":  func(h map[string]string) { h[HeaderRequestAt] = time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339) },
		"skewed ahead": func(h map[string]string) { h[HeaderRequestAt] = time.Now().UTC().Add(maxClockSkew + time.Minute).Format(time.RFC3339) },
	}
	for name, mutate := range cases {
		h := validHeaders()
		mutate(h)
		if rec := doReq(t, e, http.MethodPost, "/purchases", strings.NewReader(`{"x":1}`), h); rec.Code != http.StatusBadRequest {
			t.Errorf("%s => want 400, got %d", name, rec.Code)
		}
	}
	if calls != 0 {
		t.Fatalf("handler must not run on invalid headers, ran %d times", calls)
	}
}

func Test_RequiresActor(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, "", countingHandler(&calls))
	if rec := doReq(t, e, http.MethodPost, "/purchases", strings.NewReader(`{}`), validHeaders()); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous => want 401, got %d", rec.Code)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, "u1", countingHandler(&calls))
	h := validHeaders()

	rec1 := doReq(t, e, http.MethodPost, "/purchases", strings.NewReader(`{"amount":5}`), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}
	rec2 := doReq(t, e, http.MethodPost, "/purchases", strings.NewReader(`{"amount":5}`), h)
	if rec2.Code != http.StatusCreated || rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay => %d %q vs %q", rec2.Code, rec2.Body.String(), rec1.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func Test_KeyIsPerUser(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	var calls int32
	h := validHeaders()
	for _, user := range []string{"u1", "u2"} {
		e := setupEcho(rdb, user, countingHandler(&calls))
		if rec := doReq(t, e, http.MethodPost, "/purchases", strings.NewReader(`{}`), h); rec.Code != http.StatusCreated {
			t.Fatalf("%s => %d", user, rec.Code)
		}
	}
	if calls != 2 || len(mr.Keys()) != 2 {
		t.Fatalf("calls=%d keys=%v", calls, mr.Keys())
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, "u1", countingHandler(&calls))

	body := []byte(`{"x":1}`)
	key := idempKey(http.MethodPost, "/purchases", "u1", strings.Repeat("a", 32))
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash(body), CreatedAt: nowUTC()}
	if ok, err := (entryStore{rdb: rdb}).claim(context.Background(), key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/purchases", bytes.NewReader(body), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameReqID_DifferentBody(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, "u1", countingHandler(&calls))

	key := idempKey(http.MethodPost, "/purchases", "u1", strings.Repeat("a", 32))
	final := idempEntry{Code: http.StatusCreated, Body: []byte(`{"ok":true}`), BodySHA256: bodyHash([]byte(`{"x":1}`))}
	if err := (entryStore{rdb: rdb}).finish(context.Background(), key, final, 5*time.Minute); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, "/purchases", strings.NewReader(`{"x":2}`), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same id => want 409, got %d", rec.Code)
	}
}

func Test_ServerErrorIsNotStored(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	e := setupEcho(rdb, "u1", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "boom"})
	})
	if rec := doReq(t, e, http.MethodPost, "/purchases", strings.NewReader(`{}`), validHeaders()); rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("5xx must not be replayed, keys=%v", keys)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	var calls int32
	e := setupEcho(rdb, "u1", countingHandler(&calls))

	rec := doReq(t, e, http.MethodPost, "/purchases", strings.NewReader(`{}`), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}
