package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const capabilityKey = "capability"

// Authenticate parses the Bearer token, when one is sent, and stores the
// caller's capability on the request context. Requests without a token pass
// through anonymous; a token that fails to parse is rejected outright.
func Authenticate(issuer *Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "malformed authorization header"})
			}

			capability, err := issuer.Parse(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}

			c.Set(capabilityKey, capability)
			return next(c)
		}
	}
}

// FromContext returns the capability stored by Authenticate. The second
// result is false for anonymous requests.
func FromContext(c echo.Context) (Capability, bool) {
	capability, ok := c.Get(capabilityKey).(Capability)
	return capability, ok
}
