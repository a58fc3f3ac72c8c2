package middleware

import (
	"context"
	"net/http"
	"strings"

	"opsplatform-backend/internal/domain/access"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Claims are issued by the external auth service.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, userID, name, roleCode string) (access.Actor, error)
}

// Auth verifies the bearer token (HS256) and stores the resolved actor on
// the context.
func Auth(secret []byte, resolver ActorResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			var claims Claims
			_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(*jwt.Token) (any, error) { return secret, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithExpirationRequired(),
			)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			if strings.TrimSpace(claims.Subject) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token has no subject"})
			}

			actor, err := resolver.ResolveActor(c.Request().Context(), claims.Subject, claims.Name, claims.Role)
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "cannot resolve caller role"})
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// ActorFrom returns the actor stored by Auth.
func ActorFrom(c echo.Context) (access.Actor, bool) {
	a, ok := c.Get(actorKey).(access.Actor)
	return a, ok
}

// WithActor stores a on c; tests use it in place of Auth.
func WithActor(c echo.Context, a access.Actor) { c.Set(actorKey, a) }
