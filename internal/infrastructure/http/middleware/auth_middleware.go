package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edumeet/notifier/pkg/jwt"
)

const (
	// ClientContextKey is the Echo context key for the authenticated client
	ClientContextKey = "client"
	// ClaimsContextKey is the Echo context key for the full token claims
	ClaimsContextKey = "claims"
)

// EchoAuth returns an Echo middleware that validates the bearer token and
// sets "client" (string) and "claims" (*jwt.Claims) into the Echo context
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(ClientContextKey, claims.Client)
			c.Set(ClaimsContextKey, claims)

			return next(c)
		}
	}
}

// RequireScope checks that the authenticated client carries the given scope
func RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Client not authenticated")
			}
			if !claims.HasScope(scope) {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}
	return ""
}
