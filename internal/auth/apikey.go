package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
)

// APIKeyAuth creates middleware that authenticates stock feed requests with
// the shared secret key. Supports both X-API-Key header and Bearer token
// authentication; comparison is constant-time.
func APIKeyAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var key string

			if apiKey := c.Request().Header.Get("X-API-Key"); apiKey != "" {
				key = apiKey
			} else if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				key = strings.TrimPrefix(auth, "Bearer ")
			}

			if key == "" {
				return echo.NewHTTPError(401, "Missing API key")
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				return echo.NewHTTPError(401, "Invalid API key")
			}

			return next(c)
		}
	}
}
