package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const HeaderAPIKey = "X-Api-Key"

// APIKey requires the X-Api-Key header (or AGRI_KEY cookie) to equal key.
// An empty key disables the check.
func APIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return next(c)
			}
			got := c.Request().Header.Get(HeaderAPIKey)
			if got == "" {
				if ck, err := c.Cookie("AGRI_KEY"); err == nil {
					got = ck.Value
				}
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid api key"})
			}
			return next(c)
		}
	}
}
