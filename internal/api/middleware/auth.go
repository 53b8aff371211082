package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

// CurrentUserKey is the context key under which Auth stores the resolved
// account.
const CurrentUserKey = "current_user"

// Auth extracts the bearer token, resolves it to an account through the auth
// service, and injects the account into the request context. Anything short
// of a valid token over an existing account is a 401.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.CurrentUser(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}
