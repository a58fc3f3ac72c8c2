package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"opsplatform-backend/internal/domain/access"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

var secret = []byte("0123456789abcdef")

type resolverFunc func(ctx context.Context, userID, name, roleCode string) (access.Actor, error)

func (f resolverFunc) ResolveActor(ctx context.Context, userID, name, roleCode string) (access.Actor, error) {
	return f(ctx, userID, name, roleCode)
}

func sign(t *testing.T, key []byte, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func claimsFor(sub string, ttl time.Duration) Claims {
	return Claims{
		Name: "Ana",
		Role: "finance",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
}

func authEcho(resolver ActorResolver) *echo.Echo {
	e := echo.New()
	e.Use(Auth(secret, resolver))
	e.GET("/me", func(c echo.Context) error {
		a, ok := ActorFrom(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, map[string]any{"user": a.UserID, "role": a.RoleCode, "team": a.TeamAccess})
	})
	return e
}

func call(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_ResolvesActor(t *testing.T) {
	var gotRole string
	e := authEcho(resolverFunc(func(_ context.Context, userID, name, roleCode string) (access.Actor, error) {
		gotRole = roleCode
		return access.Actor{UserID: userID, Name: name, RoleCode: "FINANCE", TeamAccess: true}, nil
	}))

	rec := call(e, "Bearer "+sign(t, secret, jwt.SigningMethodHS256, claimsFor("u1", time.Hour)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if gotRole != "finance" || rec.Body.String() != "{\"role\":\"FINANCE\",\"team\":true,\"user\":\"u1\"}\n" {
		t.Fatalf("role=%s body=%s", gotRole, rec.Body.String())
	}
}

func TestAuth_Rejects(t *testing.T) {
	ok := resolverFunc(func(_ context.Context, userID, _, _ string) (access.Actor, error) {
		return access.Actor{UserID: userID}, nil
	})
	e := authEcho(ok)

	cases := map[string]string{
		"missing":    "",
		"not bearer": "Basic abc",
		"garbage":    "Bearer not.a.jwt",
		"expired":    "Bearer " + sign(t, secret, jwt.SigningMethodHS256, claimsFor("u1", -time.Minute)),
		"wrong key":  "Bearer " + sign(t, []byte("another-secret-key"), jwt.SigningMethodHS256, claimsFor("u1", time.Hour)),
		"wrong alg":  "Bearer " + sign(t, secret, jwt.SigningMethodHS512, claimsFor("u1", time.Hour)),
		"no subject": "Bearer " + sign(t, secret, jwt.SigningMethodHS256, claimsFor("", time.Hour)),
		"no expiry":  "Bearer " + sign(t, secret, jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}),
	}
	for name, authz := range cases {
		if rec := call(e, authz); rec.Code != http.StatusUnauthorized {
			t.Errorf("%s => want 401, got %d", name, rec.Code)
		}
	}

	failing := authEcho(resolverFunc(func(context.Context, string, string, string) (access.Actor, error) {
		return access.Actor{}, errors.New("db down")
	}))
	if rec := call(failing, "Bearer "+sign(t, secret, jwt.SigningMethodHS256, claimsFor("u1", time.Hour))); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("resolver failure => want 503, got %d", rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	e := echo.New()
	e.Use(fakeAuth("u9"), RequestLogger(logger))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.InfoLevel {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.Data["status"] != http.StatusNoContent || entry.Data["uri"] != "/ok?x=1" || entry.Data["user_id"] != "u9" {
		t.Fatalf("fields = %v", entry.Data)
	}
}
