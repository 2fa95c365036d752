package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clouddevops/devopsapp/pkg/types"
)

// APIKeyHeader carries the API key on requests to the message backend.
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware validates the request's API key against apiKey.
// The key is read from X-API-Key, then "Authorization: Bearer", then the
// api_key query parameter. An empty apiKey disables authentication.
func APIKeyMiddleware(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiKey == "" {
				return next(c)
			}

			provided := providedKey(c)
			if provided == "" {
				return c.JSON(http.StatusUnauthorized, types.APIError{Error: "missing API key"})
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				return c.JSON(http.StatusForbidden, types.APIError{Error: "invalid API key"})
			}

			return next(c)
		}
	}
}

func providedKey(c echo.Context) string {
	req := c.Request()
	if key := req.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	if authz := req.Header.Get(echo.HeaderAuthorization); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return c.QueryParam("api_key")
}
